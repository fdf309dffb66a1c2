package admin

import (
	"context"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
)

type AdminService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	ListBindings(ctx context.Context) ([]identity.BindingResponse, error)
	// DeleteBinding removes the binding and any conversation state of its identity.
	DeleteBinding(ctx context.Context, employeeID string) (identity.BindingResponse, error)

	// PurgeAll wipes bindings, states, attendance records and location samples.
	PurgeAll(ctx context.Context) (PurgeResponse, error)
}
