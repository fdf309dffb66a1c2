package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type identityRepository struct {
	db *database.DB
}

func NewIdentityRepository(db *database.DB) identity.IdentityRepository {
	return &identityRepository{db: db}
}

// IsEmployeeIDTaken implements identity.IdentityRepository.
func (r *identityRepository) IsEmployeeIDTaken(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var taken bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bindings WHERE employee_id = $1)`, employeeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check employee id: %w", err)
	}
	return taken, nil
}

// IsBound implements identity.IdentityRepository.
func (r *identityRepository) IsBound(ctx context.Context, externalID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var bound bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bindings WHERE external_id = $1)`, externalID).Scan(&bound)
	if err != nil {
		return false, fmt.Errorf("failed to check binding: %w", err)
	}
	return bound, nil
}

// GetByExternalID implements identity.IdentityRepository.
func (r *identityRepository) GetByExternalID(ctx context.Context, externalID string) (identity.Binding, error) {
	return r.getOne(ctx, `
		SELECT external_id, employee_id, display_name, bound_at
		FROM bindings
		WHERE external_id = $1
	`, externalID)
}

// GetByEmployeeID implements identity.IdentityRepository.
func (r *identityRepository) GetByEmployeeID(ctx context.Context, employeeID string) (identity.Binding, error) {
	return r.getOne(ctx, `
		SELECT external_id, employee_id, display_name, bound_at
		FROM bindings
		WHERE employee_id = $1
	`, employeeID)
}

func (r *identityRepository) getOne(ctx context.Context, query string, arg string) (identity.Binding, error) {
	q := GetQuerier(ctx, r.db)

	var b identity.Binding
	err := q.QueryRow(ctx, query, arg).Scan(&b.ExternalID, &b.EmployeeID, &b.DisplayName, &b.BoundAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Binding{}, identity.ErrBindingNotFound
		}
		return identity.Binding{}, fmt.Errorf("failed to get binding: %w", err)
	}
	return b, nil
}

// Create implements identity.IdentityRepository. Both keys are unique in the schema, so two
// racing binds for the same employee id cannot both commit.
func (r *identityRepository) Create(ctx context.Context, binding identity.Binding) (identity.Binding, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bindings (external_id, employee_id, display_name, bound_at)
		VALUES ($1, $2, $3, $4)
		RETURNING bound_at
	`

	err := q.QueryRow(ctx, query,
		binding.ExternalID,
		binding.EmployeeID,
		binding.DisplayName,
		binding.BoundAt,
	).Scan(&binding.BoundAt)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.Binding{}, identity.ErrConflict
		}
		return identity.Binding{}, fmt.Errorf("failed to create binding: %w", err)
	}
	return binding, nil
}

// List implements identity.IdentityRepository.
func (r *identityRepository) List(ctx context.Context) ([]identity.Binding, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT external_id, employee_id, display_name, bound_at
		FROM bindings
		ORDER BY employee_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}
	defer rows.Close()

	var bindings []identity.Binding
	for rows.Next() {
		var b identity.Binding
		if err := rows.Scan(&b.ExternalID, &b.EmployeeID, &b.DisplayName, &b.BoundAt); err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		bindings = append(bindings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bindings: %w", err)
	}
	return bindings, nil
}

// DeleteByEmployeeID implements identity.IdentityRepository.
func (r *identityRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) (identity.Binding, error) {
	q := GetQuerier(ctx, r.db)

	var b identity.Binding
	err := q.QueryRow(ctx, `
		DELETE FROM bindings
		WHERE employee_id = $1
		RETURNING external_id, employee_id, display_name, bound_at
	`, employeeID).Scan(&b.ExternalID, &b.EmployeeID, &b.DisplayName, &b.BoundAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Binding{}, identity.ErrBindingNotFound
		}
		return identity.Binding{}, fmt.Errorf("failed to delete binding: %w", err)
	}
	return b, nil
}

// DeleteAll implements identity.IdentityRepository.
func (r *identityRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM bindings`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bindings: %w", err)
	}
	return tag.RowsAffected(), nil
}
