// Package memory provides mutex-guarded in-process repositories for single-instance
// deployments and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
)

type identityRepository struct {
	mu         sync.RWMutex
	byExternal map[string]identity.Binding
	byEmployee map[string]string
}

func NewIdentityRepository() identity.IdentityRepository {
	return &identityRepository{
		byExternal: make(map[string]identity.Binding),
		byEmployee: make(map[string]string),
	}
}

func (r *identityRepository) IsEmployeeIDTaken(ctx context.Context, employeeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmployee[employeeID]
	return ok, nil
}

func (r *identityRepository) IsBound(ctx context.Context, externalID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byExternal[externalID]
	return ok, nil
}

func (r *identityRepository) GetByExternalID(ctx context.Context, externalID string) (identity.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byExternal[externalID]
	if !ok {
		return identity.Binding{}, identity.ErrBindingNotFound
	}
	return b, nil
}

func (r *identityRepository) GetByEmployeeID(ctx context.Context, employeeID string) (identity.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	externalID, ok := r.byEmployee[employeeID]
	if !ok {
		return identity.Binding{}, identity.ErrBindingNotFound
	}
	return r.byExternal[externalID], nil
}

// Create checks both keys and inserts under one write lock.
func (r *identityRepository) Create(ctx context.Context, binding identity.Binding) (identity.Binding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExternal[binding.ExternalID]; ok {
		return identity.Binding{}, identity.ErrConflict
	}
	if _, ok := r.byEmployee[binding.EmployeeID]; ok {
		return identity.Binding{}, identity.ErrConflict
	}
	r.byExternal[binding.ExternalID] = binding
	r.byEmployee[binding.EmployeeID] = binding.ExternalID
	return binding, nil
}

func (r *identityRepository) List(ctx context.Context) ([]identity.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings := make([]identity.Binding, 0, len(r.byExternal))
	for _, b := range r.byExternal {
		bindings = append(bindings, b)
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].EmployeeID < bindings[j].EmployeeID })
	return bindings, nil
}

func (r *identityRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) (identity.Binding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	externalID, ok := r.byEmployee[employeeID]
	if !ok {
		return identity.Binding{}, identity.ErrBindingNotFound
	}
	b := r.byExternal[externalID]
	delete(r.byEmployee, employeeID)
	delete(r.byExternal, externalID)
	return b, nil
}

func (r *identityRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.byExternal))
	r.byExternal = make(map[string]identity.Binding)
	r.byEmployee = make(map[string]string)
	return n, nil
}
