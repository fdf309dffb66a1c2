package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/admin"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/report"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Admin domain errors
	case errors.Is(err, admin.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, admin.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, admin.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Identity domain errors
	case errors.Is(err, identity.ErrBindingNotFound):
		NotFound(w, "Binding not found")
	case errors.Is(err, identity.ErrConflict):
		Conflict(w, "Identity or employee id already bound")

	// Location domain errors
	case errors.Is(err, location.ErrUnknownIdentity):
		NotFound(w, "Identity is not bound to an employee")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
