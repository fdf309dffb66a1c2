package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/middleware"
	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/response"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Webhook    WebhookHandler
	Admin      AdminHandler
	Report     ReportHandler
	Attendance AttendanceHandler
	Feed       FeedHandler
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/webhook", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/messages", h.Webhook.Message)
			r.Post("/locations", h.Webhook.Location)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Admin.Login)

			// Requires an admin access token. EventSource cannot set headers, so the
			// token may also come as ?jwt=.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Use(middleware.AdminOnly)

				r.Route("/bindings", func(r chi.Router) {
					r.Get("/", h.Admin.ListBindings)
					r.Delete("/{employeeID}", h.Admin.DeleteBinding)
				})

				r.Route("/exports", func(r chi.Router) {
					r.Get("/attendance", h.Report.ExportAttendance)
					r.Get("/locations", h.Report.ExportLocations)
				})

				r.Get("/attendance", h.Attendance.List)
				r.Get("/attendance/stream", h.Feed.Stream)
				r.Delete("/data", h.Admin.PurgeAll)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
