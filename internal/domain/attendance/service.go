package attendance

import (
	"context"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
)

// AttendanceService is the geofence-gated clock engine for bound identities.
type AttendanceService interface {
	// ClockIn records today's clock-in or fails with ErrAlreadyClockedIn, ErrNoLocationData
	// or a *GeofenceError.
	ClockIn(ctx context.Context, binding identity.Binding) (Record, error)

	// ClockOut records today's clock-out. With no clock-in today it writes nothing, opens a
	// forgot-checkout confirmation and returns (nil, nil).
	ClockOut(ctx context.Context, binding identity.Binding) (*Record, error)

	// ConfirmForgotCheckout writes the backfilled clock-in/clock-out pair for a pending
	// confirmation. It returns ErrNoPendingConfirmation when nothing is pending.
	ConfirmForgotCheckout(ctx context.Context, binding identity.Binding) ([]Record, error)

	// CancelPendingConfirmation drops a pending confirmation and reports whether one existed.
	CancelPendingConfirmation(ctx context.Context, binding identity.Binding) (bool, error)

	ListAttendance(ctx context.Context, req ListAttendanceRequest) ([]RecordResponse, error)
}
