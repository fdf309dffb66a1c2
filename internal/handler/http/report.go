package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/report"
	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/response"
)

type ReportHandler interface {
	// GET /admin/exports/attendance
	ExportAttendance(w http.ResponseWriter, r *http.Request)

	// GET /admin/exports/locations
	ExportLocations(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func parseExportRequest(r *http.Request) report.ExportRequest {
	q := r.URL.Query()
	req := report.ExportRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Format:    q.Get("format"),
	}
	if employeeID := q.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	return req
}

func writeFile(w http.ResponseWriter, file report.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}

// ExportAttendance implements ReportHandler.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportAttendance(r.Context(), parseExportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeFile(w, file)
}

// ExportLocations implements ReportHandler.
func (h *reportHandlerImpl) ExportLocations(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportLocations(r.Context(), parseExportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeFile(w, file)
}
