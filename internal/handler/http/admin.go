package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/admin"
	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdminHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	ListBindings(w http.ResponseWriter, r *http.Request)
	DeleteBinding(w http.ResponseWriter, r *http.Request)
	PurgeAll(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	adminService admin.AdminService
}

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandlerImpl{
		adminService: adminService,
	}
}

// Login implements AdminHandler.
func (h *adminHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq admin.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := h.adminService.Login(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", tokenResponse)
}

// ListBindings implements AdminHandler.
func (h *adminHandlerImpl) ListBindings(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.adminService.ListBindings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, bindings)
}

// DeleteBinding implements AdminHandler.
func (h *adminHandlerImpl) DeleteBinding(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	deleted, err := h.adminService.DeleteBinding(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Binding deleted", deleted)
}

// PurgeAll implements AdminHandler.
func (h *adminHandlerImpl) PurgeAll(w http.ResponseWriter, r *http.Request) {
	purged, err := h.adminService.PurgeAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All data purged", purged)
}
