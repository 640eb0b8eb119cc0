package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/savegress/eduguard/internal/audit"
	"github.com/savegress/eduguard/internal/config"
	"github.com/savegress/eduguard/internal/devices"
	"github.com/savegress/eduguard/internal/records"
)

// Server represents the API server
type Server struct {
	config   *config.Config
	router   chi.Router
	handlers *Handlers
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, registry *devices.Registry, sanitizer *records.Sanitizer, auditLog *audit.Logger) *Server {
	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		handlers: NewHandlers(registry, sanitizer, auditLog),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handlers.HealthCheck)

	s.router.Route("/api/v1/eduguard", func(r chi.Router) {
		if s.config.Server.JWTSecret != "" {
			r.Use(AuthMiddleware(s.config.Server.JWTSecret))
		}

		// Sanitization
		r.Route("/sanitize", func(r chi.Router) {
			r.Post("/record", s.handlers.SanitizeRecord)
			r.Post("/student", s.handlers.SanitizeStudent)
			r.Post("/attendance", s.handlers.SanitizeAttendance)
			r.Post("/notification", s.handlers.SanitizeNotification)
			r.Post("/aggregate", s.handlers.SanitizeAggregate)
			r.Post("/validate", s.handlers.ValidateRecord)
			r.Post("/k-anonymity", s.handlers.CheckKAnonymity)
		})

		// Device registry
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handlers.ListDevices)
			r.Post("/", s.handlers.RegisterDevice)
			r.Get("/{id}", s.handlers.GetDevice)
			r.Post("/{id}/revoke", s.handlers.RevokeDevice)
		})

		// Audit
		r.Route("/audit", func(r chi.Router) {
			r.Get("/events", s.handlers.ListAuditEvents)
			r.Get("/events/{id}", s.handlers.GetAuditEvent)
			r.Get("/stats", s.handlers.GetAuditStats)
		})
	})
}

// Router returns the chi router
func (s *Server) Router() http.Handler {
	return s.router
}
