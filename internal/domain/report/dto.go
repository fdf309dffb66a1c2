package report

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportRequest selects an inclusive date range, optionally for one employee.
type ExportRequest struct {
	EmployeeID *string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	Format     string

	start time.Time
	end   time.Time
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	var startOK, endOK bool
	r.start, startOK = validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	r.end, endOK = validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && r.end.Before(r.start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = FormatCSV
	}
	if !validator.IsInSlice(r.Format, []string{FormatCSV, FormatXLSX}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed dates. Only meaningful after a successful Validate.
func (r *ExportRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

// DailyAttendanceRow is one employee-day with the first accepted clock-in/out.
type DailyAttendanceRow struct {
	EmployeeID      string  `json:"employee_id"`
	DisplayName     string  `json:"display_name"`
	Date            string  `json:"date"`
	ClockInTime     *string `json:"clock_in_time,omitempty"`
	ClockOutTime    *string `json:"clock_out_time,omitempty"`
	ClockInOutcome  *string `json:"clock_in_outcome,omitempty"`
	ClockOutOutcome *string `json:"clock_out_outcome,omitempty"`
}

type LocationRow struct {
	EmployeeID  string  `json:"employee_id"`
	DisplayName string  `json:"display_name"`
	OccurredAt  string  `json:"occurred_at"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// File is a rendered export ready to be streamed.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
}
