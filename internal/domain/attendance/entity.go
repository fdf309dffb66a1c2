package attendance

import (
	"time"
)

type EventKind string

const (
	KindClockIn  EventKind = "clock_in"
	KindClockOut EventKind = "clock_out"
)

type Outcome string

const (
	OutcomeNormal               Outcome = "normal"
	OutcomeForgottenConfirmed   Outcome = "forgotten_confirmed"
	OutcomeBackfilled           Outcome = "backfilled"
	OutcomeLikelyMissedCheckout Outcome = "likely_missed_checkout"
	OutcomeRejectedOutOfRange   Outcome = "rejected_out_of_range"
)

// IsAccepted reports whether the outcome counts toward the one-per-kind-per-day rule.
// Rejected audit rows do not.
func (o Outcome) IsAccepted() bool {
	switch o {
	case OutcomeNormal, OutcomeForgottenConfirmed, OutcomeBackfilled, OutcomeLikelyMissedCheckout:
		return true
	}
	return false
}

// Record is one append-only attendance log entry.
type Record struct {
	ID          string
	EmployeeID  string
	ExternalID  string
	DisplayName string
	Kind        EventKind
	// OccurredAt is in the deployment time zone; WorkDate is its calendar date.
	OccurredAt     time.Time
	WorkDate       time.Time
	Outcome        Outcome
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	CreatedAt      time.Time
}

// DateOf truncates t to midnight in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today summarises the accepted records of one employee on one work date.
type Today struct {
	ClockIn  *Record
	ClockOut *Record
}

func Summarize(records []Record) Today {
	var t Today
	for i := range records {
		r := records[i]
		if !r.Outcome.IsAccepted() {
			continue
		}
		switch r.Kind {
		case KindClockIn:
			if t.ClockIn == nil || r.OccurredAt.Before(t.ClockIn.OccurredAt) {
				t.ClockIn = &r
			}
		case KindClockOut:
			if t.ClockOut == nil || r.OccurredAt.Before(t.ClockOut.OccurredAt) {
				t.ClockOut = &r
			}
		}
	}
	return t
}
