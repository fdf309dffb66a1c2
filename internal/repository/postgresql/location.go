package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type locationRepository struct {
	db  *database.DB
	loc *time.Location
}

func NewLocationRepository(db *database.DB, loc *time.Location) location.LocationRepository {
	return &locationRepository{db: db, loc: loc}
}

// Append implements location.LocationRepository.
func (l *locationRepository) Append(ctx context.Context, sample location.Sample) (location.Sample, error) {
	q := GetQuerier(ctx, l.db)

	if sample.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return location.Sample{}, fmt.Errorf("failed to generate sample id: %w", err)
		}
		sample.ID = id.String()
	}

	query := `
		INSERT INTO location_samples (id, external_id, employee_id, display_name, latitude, longitude, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		sample.ID,
		sample.ExternalID,
		sample.EmployeeID,
		sample.DisplayName,
		sample.Latitude,
		sample.Longitude,
		sample.OccurredAt,
	).Scan(&sample.CreatedAt)
	if err != nil {
		return location.Sample{}, fmt.Errorf("failed to append location sample: %w", err)
	}

	sample.CreatedAt = sample.CreatedAt.In(l.loc)
	return sample, nil
}

// Latest implements location.LocationRepository.
func (l *locationRepository) Latest(ctx context.Context, externalID string) (location.Sample, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, external_id, employee_id, display_name, latitude, longitude, occurred_at, created_at
		FROM location_samples
		WHERE external_id = $1
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT 1
	`

	var s location.Sample
	err := q.QueryRow(ctx, query, externalID).Scan(
		&s.ID, &s.ExternalID, &s.EmployeeID, &s.DisplayName, &s.Latitude, &s.Longitude, &s.OccurredAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Sample{}, location.ErrSampleNotFound
		}
		return location.Sample{}, fmt.Errorf("failed to get latest location sample: %w", err)
	}

	s.OccurredAt = s.OccurredAt.In(l.loc)
	s.CreatedAt = s.CreatedAt.In(l.loc)
	return s, nil
}

// ListRange implements location.LocationRepository.
func (l *locationRepository) ListRange(ctx context.Context, employeeID *string, from time.Time, to time.Time) ([]location.Sample, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, external_id, employee_id, display_name, latitude, longitude, occurred_at, created_at
		FROM location_samples
		WHERE occurred_at >= $1
		  AND occurred_at < $2
		  AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY employee_id, occurred_at
	`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list location samples: %w", err)
	}
	defer rows.Close()

	var samples []location.Sample
	for rows.Next() {
		var s location.Sample
		if err := rows.Scan(
			&s.ID, &s.ExternalID, &s.EmployeeID, &s.DisplayName, &s.Latitude, &s.Longitude, &s.OccurredAt, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location sample: %w", err)
		}
		s.OccurredAt = s.OccurredAt.In(l.loc)
		s.CreatedAt = s.CreatedAt.In(l.loc)
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location samples: %w", err)
	}
	return samples, nil
}

// DeleteAll implements location.LocationRepository.
func (l *locationRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM location_samples`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete location samples: %w", err)
	}
	return tag.RowsAffected(), nil
}
