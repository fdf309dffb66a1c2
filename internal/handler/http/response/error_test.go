package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/admin"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/report"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validator.ValidationErrors{{Field: "start_date", Message: "bad"}}, http.StatusUnprocessableEntity},
		{"credentials", admin.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token", admin.ErrInvalidToken, http.StatusUnauthorized},
		{"not admin", admin.ErrAdminPrivilegeRequired, http.StatusForbidden},
		{"wrapped binding not found", fmt.Errorf("delete: %w", identity.ErrBindingNotFound), http.StatusNotFound},
		{"conflict", identity.ErrConflict, http.StatusConflict},
		{"unknown identity", location.ErrUnknownIdentity, http.StatusNotFound},
		{"date range", report.ErrInvalidDateRange, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
