package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const dateLayout = "2006-01-02"

type attendanceRepository struct {
	db  *database.DB
	loc *time.Location
}

// NewAttendanceRepository returns records with times expressed in loc.
func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, loc: loc}
}

// Append implements attendance.AttendanceRepository. The partial unique index on
// (employee_id, event_kind, work_date) rejects a second accepted record for the day.
func (a *attendanceRepository) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to generate record id: %w", err)
		}
		record.ID = id.String()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, external_id, display_name, event_kind,
			occurred_at, work_date, outcome, latitude, longitude, distance_meters
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, $11
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.ExternalID,
		record.DisplayName,
		string(record.Kind),
		record.OccurredAt,
		record.WorkDate.Format(dateLayout),
		string(record.Outcome),
		record.Latitude,
		record.Longitude,
		record.DistanceMeters,
	).Scan(&record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to append attendance record: %w", err)
	}

	record.CreatedAt = record.CreatedAt.In(a.loc)
	return record, nil
}

// AppendPair implements attendance.AttendanceRepository.
func (a *attendanceRepository) AppendPair(ctx context.Context, first attendance.Record, second attendance.Record) ([]attendance.Record, error) {
	var stored []attendance.Record
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)

		r1, err := a.Append(txCtx, first)
		if err != nil {
			return err
		}
		r2, err := a.Append(txCtx, second)
		if err != nil {
			return err
		}
		stored = []attendance.Record{r1, r2}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ListByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, external_id, display_name, event_kind,
			   occurred_at, work_date, outcome, latitude, longitude, distance_meters, created_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND work_date = $2::date
		ORDER BY occurred_at, created_at
	`

	rows, err := q.Query(ctx, query, employeeID, workDate.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return a.scanRecords(rows)
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, filter attendance.RangeFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, external_id, display_name, event_kind,
			   occurred_at, work_date, outcome, latitude, longitude, distance_meters, created_at
		FROM attendance_records
		WHERE work_date BETWEEN $1::date AND $2::date
		  AND ($3::text IS NULL OR employee_id = $3)
		ORDER BY employee_id, work_date, occurred_at
	`

	rows, err := q.Query(ctx, query,
		filter.StartDate.Format(dateLayout),
		filter.EndDate.Format(dateLayout),
		filter.EmployeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	return a.scanRecords(rows)
}

// DeleteAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (a *attendanceRepository) scanRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		var (
			r        attendance.Record
			workDate time.Time
		)
		err := rows.Scan(
			&r.ID, &r.EmployeeID, &r.ExternalID, &r.DisplayName, &r.Kind,
			&r.OccurredAt, &workDate, &r.Outcome, &r.Latitude, &r.Longitude, &r.DistanceMeters, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}

		// DATE columns scan as UTC midnight; rebuild the calendar day in the deployment zone.
		r.WorkDate = time.Date(workDate.Year(), workDate.Month(), workDate.Day(), 0, 0, 0, 0, a.loc)
		r.OccurredAt = r.OccurredAt.In(a.loc)
		r.CreatedAt = r.CreatedAt.In(a.loc)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
