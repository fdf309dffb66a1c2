package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/admin"
	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, admin.ErrInvalidToken)
			return
		}

		isAdmin, ok := claims["is_admin"].(bool)
		if !isAdmin || !ok {
			response.HandleError(w, admin.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
