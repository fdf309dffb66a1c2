package conversation

import "time"

type Phase string

const (
	PhaseAwaitingEmployeeID            Phase = "awaiting_employee_id"
	PhaseAwaitingName                  Phase = "awaiting_name"
	PhaseAwaitingConfirmForgotCheckout Phase = "awaiting_confirm_forgot_checkout"
)

// State is the single in-flight dialogue step of one identity.
type State struct {
	ExternalID        string
	Phase             Phase
	PendingEmployeeID *string
	UpdatedAt         time.Time
}

// IsOnboarding reports whether the phase belongs to the unbound binding dialogue.
func (p Phase) IsOnboarding() bool {
	return p == PhaseAwaitingEmployeeID || p == PhaseAwaitingName
}
