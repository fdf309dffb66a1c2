package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
)

type stateRepository struct {
	mu     sync.Mutex
	states map[string]conversation.State
}

func NewStateRepository() conversation.StateRepository {
	return &stateRepository{states: make(map[string]conversation.State)}
}

func (r *stateRepository) Get(ctx context.Context, externalID string) (conversation.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[externalID]
	if !ok {
		return conversation.State{}, conversation.ErrStateNotFound
	}
	return copyState(s), nil
}

func (r *stateRepository) Save(ctx context.Context, state conversation.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.ExternalID] = copyState(state)
	return nil
}

func (r *stateRepository) Delete(ctx context.Context, externalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, externalID)
	return nil
}

func (r *stateRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, s := range r.states {
		if s.UpdatedAt.Before(before) {
			delete(r.states, id)
			n++
		}
	}
	return n, nil
}

func (r *stateRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.states))
	r.states = make(map[string]conversation.State)
	return n, nil
}

// copyState detaches PendingEmployeeID so callers cannot mutate stored state.
func copyState(s conversation.State) conversation.State {
	if s.PendingEmployeeID != nil {
		id := *s.PendingEmployeeID
		s.PendingEmployeeID = &id
	}
	return s
}
