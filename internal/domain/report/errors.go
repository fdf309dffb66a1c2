package report

import "errors"

var (
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
