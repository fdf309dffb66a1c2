package chat

import (
	"unicode/utf8"

	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
)

const maxTextLength = 2000

type MessageRequest struct {
	ExternalID string `json:"external_id"`
	Text       string `json:"text"`
}

func (r *MessageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ExternalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "external_id",
			Message: "external_id is required",
		})
	}
	if utf8.RuneCountInString(r.Text) > maxTextLength {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r MessageRequest) ToEvent() Event {
	return Event{ExternalID: r.ExternalID, Text: r.Text}
}

// MessageResponse carries both the symbolic outcome and its rendered text.
type MessageResponse struct {
	Outcome Outcome           `json:"outcome"`
	Params  map[string]string `json:"params,omitempty"`
	Reply   string            `json:"reply"`
}
