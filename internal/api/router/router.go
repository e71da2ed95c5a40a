package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agendadoc/booking-platform/internal/http/handlers"
	httpmiddleware "github.com/agendadoc/booking-platform/internal/http/middleware"
	"github.com/agendadoc/booking-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	WizardHandler  *handlers.WizardHandler
	LookupHandler  *handlers.LookupHandler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Get("/health", cfg.LookupHandler.Health)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// Wizard API, scoped to the signed-in practitioner.
	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(requirePractitioner)

		v1.Get("/recent-patients", cfg.LookupHandler.RecentPatients)
		v1.Get("/patients/search", cfg.LookupHandler.SearchPatients)
		v1.Get("/offerings", cfg.LookupHandler.Offerings)

		v1.Post("/sessions", cfg.WizardHandler.CreateSession)
		v1.Route("/sessions/{sessionID}", func(s chi.Router) {
			s.Get("/", cfg.WizardHandler.GetSession)
			s.Put("/patient", cfg.WizardHandler.SetPatient)
			s.Post("/services", cfg.WizardHandler.AddService)
			s.Delete("/services/{serviceID}", cfg.WizardHandler.RemoveService)
			s.Put("/schedule", cfg.WizardHandler.SetSchedule)
			s.Put("/details", cfg.WizardHandler.SetDetails)
			s.Post("/advance", cfg.WizardHandler.Advance)
			s.Post("/back", cfg.WizardHandler.Back)
			s.Post("/cancel", cfg.WizardHandler.Cancel)
			s.Post("/submit", cfg.WizardHandler.Submit)
		})
	})

	return r
}
