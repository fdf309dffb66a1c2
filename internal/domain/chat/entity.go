package chat

// Event is one decoded inbound chat message.
type Event struct {
	ExternalID string
	Text       string
}

// Outcome is the symbolic result of handling an event. Rendering to text is done by the
// message catalog, never by the state machine.
type Outcome string

const (
	// Onboarding
	OutcomeAskEmployeeID     Outcome = "ask_employee_id"
	OutcomeInvalidEmployeeID Outcome = "invalid_employee_id"
	OutcomeEmployeeIDTaken   Outcome = "employee_id_taken"
	OutcomeAskName           Outcome = "ask_name"
	OutcomeInvalidName       Outcome = "invalid_name"
	OutcomeBound             Outcome = "bound"
	OutcomeBindFailed        Outcome = "bind_failed"
	OutcomeBindRequired      Outcome = "bind_required"

	// Attendance
	OutcomeClockedIn             Outcome = "clocked_in"
	OutcomeAlreadyClockedIn      Outcome = "already_clocked_in"
	OutcomeClockedOut            Outcome = "clocked_out"
	OutcomeClockedOutLate        Outcome = "clocked_out_likely_missed"
	OutcomeAlreadyClockedOut     Outcome = "already_clocked_out"
	OutcomeConfirmForgotCheckout Outcome = "confirm_forgot_checkout"
	OutcomeBackfillRecorded      Outcome = "backfill_recorded"
	OutcomeNothingToConfirm      Outcome = "nothing_to_confirm"
	OutcomeConfirmationCancelled Outcome = "confirmation_cancelled"
	OutcomeOutOfRange            Outcome = "out_of_range"
	OutcomeNoLocationData        Outcome = "no_location_data"

	// Location
	OutcomeLocationRecorded Outcome = "location_recorded"
	OutcomeUnknownIdentity  Outcome = "unknown_identity"
	OutcomeInvalidLocation  Outcome = "invalid_location"

	OutcomeHelp          Outcome = "help"
	OutcomeInternalError Outcome = "internal_error"
)

// Reply parameter keys.
const (
	ParamName       = "name"
	ParamEmployeeID = "employee_id"
	ParamTime       = "time"
	ParamDistance   = "distance"
	ParamRadius     = "radius"
	ParamThreshold  = "threshold"
)

// Reply is what the core emits per event.
type Reply struct {
	Outcome Outcome
	Params  map[string]string
}

func NewReply(outcome Outcome, kv ...string) Reply {
	r := Reply{Outcome: outcome, Params: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Params[kv[i]] = kv[i+1]
	}
	return r
}
