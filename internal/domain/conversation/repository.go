package conversation

import (
	"context"
	"time"
)

type StateRepository interface {
	// Get returns ErrStateNotFound when the identity has no active state.
	Get(ctx context.Context, externalID string) (State, error)

	// Save inserts or replaces the state of state.ExternalID.
	Save(ctx context.Context, state State) error

	Delete(ctx context.Context, externalID string) error

	// DeleteStale removes states last updated before the cutoff and returns how many were removed.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)

	DeleteAll(ctx context.Context) (int64, error)
}
