package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/report"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/spreadsheet"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var (
	attendanceHeader = []string{"工號", "姓名", "日期", "上班時間", "下班時間", "上班狀態", "下班狀態"}
	locationHeader   = []string{"工號", "姓名", "時間", "緯度", "經度"}
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	locationRepo   location.LocationRepository
	loc            *time.Location
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	locationRepo location.LocationRepository,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		locationRepo:   locationRepo,
		loc:            loc,
	}
}

// dayRange converts the validated request dates into local midnights.
func (s *ReportServiceImpl) dayRange(req report.ExportRequest) (time.Time, time.Time) {
	start, end := req.Range()
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc),
		time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, s.loc)
}

// DailyAttendance aggregates accepted records into one row per employee and work date.
func (s *ReportServiceImpl) DailyAttendance(ctx context.Context, req report.ExportRequest) ([]report.DailyAttendanceRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := s.dayRange(req)

	records, err := s.attendanceRepo.ListRange(ctx, attendance.RangeFilter{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	type dayKey struct {
		employeeID string
		date       string
	}
	groups := make(map[dayKey][]attendance.Record)
	var keys []dayKey
	for _, r := range records {
		if !r.Outcome.IsAccepted() {
			continue
		}
		k := dayKey{employeeID: r.EmployeeID, date: r.WorkDate.Format(dateLayout)}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].employeeID < keys[j].employeeID
	})

	rows := make([]report.DailyAttendanceRow, 0, len(keys))
	for _, k := range keys {
		group := groups[k]
		day := attendance.Summarize(group)
		row := report.DailyAttendanceRow{
			EmployeeID:  k.employeeID,
			DisplayName: group[len(group)-1].DisplayName,
			Date:        k.date,
		}
		if day.ClockIn != nil {
			row.ClockInTime = stringPtr(day.ClockIn.OccurredAt.In(s.loc).Format(timeLayout))
			row.ClockInOutcome = stringPtr(string(day.ClockIn.Outcome))
		}
		if day.ClockOut != nil {
			row.ClockOutTime = stringPtr(day.ClockOut.OccurredAt.In(s.loc).Format(timeLayout))
			row.ClockOutOutcome = stringPtr(string(day.ClockOut.Outcome))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Locations lists every sample whose local timestamp falls on a day in the range.
func (s *ReportServiceImpl) Locations(ctx context.Context, req report.ExportRequest) ([]report.LocationRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := s.dayRange(req)

	samples, err := s.locationRepo.ListRange(ctx, req.EmployeeID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list location samples: %w", err)
	}

	rows := make([]report.LocationRow, 0, len(samples))
	for _, sample := range samples {
		rows = append(rows, report.LocationRow{
			EmployeeID:  sample.EmployeeID,
			DisplayName: sample.DisplayName,
			OccurredAt:  sample.OccurredAt.In(s.loc).Format(dateTimeLayout),
			Latitude:    sample.Latitude,
			Longitude:   sample.Longitude,
		})
	}
	return rows, nil
}

func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, req report.ExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}
	rows, err := s.DailyAttendance(ctx, req)
	if err != nil {
		return report.File{}, err
	}

	table := spreadsheet.Table{Sheet: "attendance", Header: attendanceHeader}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.EmployeeID,
			r.DisplayName,
			r.Date,
			deref(r.ClockInTime),
			deref(r.ClockOutTime),
			deref(r.ClockInOutcome),
			deref(r.ClockOutOutcome),
		})
	}
	return s.render("attendance", req, table)
}

func (s *ReportServiceImpl) ExportLocations(ctx context.Context, req report.ExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}
	rows, err := s.Locations(ctx, req)
	if err != nil {
		return report.File{}, err
	}

	table := spreadsheet.Table{Sheet: "locations", Header: locationHeader}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.EmployeeID,
			r.DisplayName,
			r.OccurredAt,
			strconv.FormatFloat(r.Latitude, 'f', 6, 64),
			strconv.FormatFloat(r.Longitude, 'f', 6, 64),
		})
	}
	return s.render("locations", req, table)
}

func (s *ReportServiceImpl) render(prefix string, req report.ExportRequest, table spreadsheet.Table) (report.File, error) {
	body, contentType, err := spreadsheet.Render(req.Format, table)
	if err != nil {
		slog.Error("failed to render export", "report", prefix, "format", req.Format, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return report.File{
		Filename:    fmt.Sprintf("%s_%s_to_%s.%s", prefix, req.StartDate, req.EndDate, req.Format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func stringPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
