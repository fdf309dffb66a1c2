package report

import "context"

// ReportService is the read side consumed by the admin export surface.
type ReportService interface {
	DailyAttendance(ctx context.Context, req ExportRequest) ([]DailyAttendanceRow, error)
	Locations(ctx context.Context, req ExportRequest) ([]LocationRow, error)

	ExportAttendance(ctx context.Context, req ExportRequest) (File, error)
	ExportLocations(ctx context.Context, req ExportRequest) (File, error)
}
