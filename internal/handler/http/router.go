package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hr-portal-backend/internal/config"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth     AuthHandler
	Employee EmployeeHandler
	Absence  AbsenceHandler
	Feedback FeedbackHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, employeeRepo employee.EmployeeRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-portal"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/validate", h.Auth.Validate)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", h.Auth.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/employee", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
			})

			r.Route("/absence", func(r chi.Router) {
				r.Post("/", h.Absence.CreateRequest)
				r.Get("/my-requests", h.Absence.GetMyRequests)
				r.Get("/employee/{id}", h.Absence.GetEmployeeRequests)
				r.Get("/approved", h.Absence.GetApprovedRequests)
				r.Get("/{id}", h.Absence.GetRequest)
				r.Delete("/{id}", h.Absence.CancelRequest)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager(employeeRepo))
					r.Get("/pending-approvals", h.Absence.GetPendingApprovals)
					r.Put("/{id}/approve", h.Absence.ApproveRequest)
					r.Put("/{id}/decline", h.Absence.DeclineRequest)
				})
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Post("/", h.Feedback.CreateFeedback)
				r.Get("/received/{employeeId}", h.Feedback.GetReceived)
				r.Get("/given/{employeeId}", h.Feedback.GetGiven)
				r.Get("/can-view/{employeeId}", h.Feedback.CanView)
				r.Get("/can-give/{employeeId}", h.Feedback.CanGive)
				r.Get("/{id}", h.Feedback.GetFeedback)
			})
		})
	})
	return r
}
