package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrOutOfRange        = errors.New("outside the allowed radius")
	ErrNoLocationData    = errors.New("no recent location sample")

	// ErrDuplicateRecord is returned by the repository when an accepted record with the
	// same (employee, kind, work date) already exists.
	ErrDuplicateRecord = errors.New("duplicate attendance record for this day")

	ErrNoPendingConfirmation = errors.New("no clock-out awaiting confirmation")
)

// GeofenceError carries the measured distance of a rejected attempt.
type GeofenceError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *GeofenceError) Error() string {
	return ErrOutOfRange.Error()
}

func (e *GeofenceError) Unwrap() error {
	return ErrOutOfRange
}
