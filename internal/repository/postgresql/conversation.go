package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type stateRepository struct {
	db *database.DB
}

func NewStateRepository(db *database.DB) conversation.StateRepository {
	return &stateRepository{db: db}
}

// Get implements conversation.StateRepository.
func (r *stateRepository) Get(ctx context.Context, externalID string) (conversation.State, error) {
	q := GetQuerier(ctx, r.db)

	var s conversation.State
	err := q.QueryRow(ctx, `
		SELECT external_id, phase, pending_employee_id, updated_at
		FROM conversation_states
		WHERE external_id = $1
	`, externalID).Scan(&s.ExternalID, &s.Phase, &s.PendingEmployeeID, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return conversation.State{}, conversation.ErrStateNotFound
		}
		return conversation.State{}, fmt.Errorf("failed to get conversation state: %w", err)
	}
	return s, nil
}

// Save implements conversation.StateRepository.
func (r *stateRepository) Save(ctx context.Context, state conversation.State) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO conversation_states (external_id, phase, pending_employee_id, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE
		SET phase = EXCLUDED.phase,
			pending_employee_id = EXCLUDED.pending_employee_id,
			updated_at = EXCLUDED.updated_at
	`, state.ExternalID, string(state.Phase), state.PendingEmployeeID, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save conversation state: %w", err)
	}
	return nil
}

// Delete implements conversation.StateRepository.
func (r *stateRepository) Delete(ctx context.Context, externalID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM conversation_states WHERE external_id = $1`, externalID); err != nil {
		return fmt.Errorf("failed to delete conversation state: %w", err)
	}
	return nil
}

// DeleteStale implements conversation.StateRepository.
func (r *stateRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM conversation_states WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale conversation states: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAll implements conversation.StateRepository.
func (r *stateRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM conversation_states`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete conversation states: %w", err)
	}
	return tag.RowsAffected(), nil
}
