package identity

import "context"

// IdentityRepository stores bindings. Implementations must enforce uniqueness of both
// external id and employee id in Create itself, not through a prior lookup.
type IdentityRepository interface {
	IsEmployeeIDTaken(ctx context.Context, employeeID string) (bool, error)
	IsBound(ctx context.Context, externalID string) (bool, error)

	// GetByExternalID returns ErrBindingNotFound when the identity is unbound.
	GetByExternalID(ctx context.Context, externalID string) (Binding, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Binding, error)

	// Create atomically inserts the binding, returning ErrConflict on either unique key.
	Create(ctx context.Context, binding Binding) (Binding, error)

	List(ctx context.Context) ([]Binding, error)

	// DeleteByEmployeeID removes the binding and returns what was deleted.
	DeleteByEmployeeID(ctx context.Context, employeeID string) (Binding, error)

	DeleteAll(ctx context.Context) (int64, error)
}
