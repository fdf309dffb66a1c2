package attendance

import (
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
)

// RangeFilter selects records by work date, optionally for a single employee.
type RangeFilter struct {
	EmployeeID *string
	StartDate  time.Time
	EndDate    time.Time
}

// ListAttendanceRequest is the admin query for raw attendance records.
type ListAttendanceRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	ExternalID     string   `json:"external_id"`
	DisplayName    string   `json:"display_name"`
	Kind           string   `json:"event_kind"`
	OccurredAt     string   `json:"occurred_at"`
	WorkDate       string   `json:"work_date"`
	Outcome        string   `json:"outcome"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		ExternalID:     r.ExternalID,
		DisplayName:    r.DisplayName,
		Kind:           string(r.Kind),
		OccurredAt:     r.OccurredAt.Format("2006-01-02 15:04:05"),
		WorkDate:       r.WorkDate.Format("2006-01-02"),
		Outcome:        string(r.Outcome),
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		DistanceMeters: r.DistanceMeters,
	}
}
