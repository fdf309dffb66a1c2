package location

import (
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
)

// RecordLocationRequest is a position ping. Either ExternalID or EmployeeID identifies
// the sender; Timestamp is optional epoch seconds.
type RecordLocationRequest struct {
	ExternalID string   `json:"external_id"`
	LineID     string   `json:"line_id"`
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Timestamp  *int64   `json:"timestamp,omitempty"`
}

func (r *RecordLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ExternalID == "" {
		r.ExternalID = r.LineID
	}

	if validator.IsEmpty(r.ExternalID) && validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "external_id",
			Message: "external_id or employee_id is required",
		})
	}

	if r.Latitude == nil || !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil || !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Timestamp != nil && *r.Timestamp <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be positive epoch seconds",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SampleResponse struct {
	ID          string  `json:"id"`
	ExternalID  string  `json:"external_id"`
	EmployeeID  string  `json:"employee_id"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OccurredAt  string  `json:"occurred_at"`
}

func ToResponse(s Sample) SampleResponse {
	return SampleResponse{
		ID:          s.ID,
		ExternalID:  s.ExternalID,
		EmployeeID:  s.EmployeeID,
		DisplayName: s.DisplayName,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		OccurredAt:  s.OccurredAt.Format("2006-01-02 15:04:05"),
	}
}
