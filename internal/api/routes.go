package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/luach-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/today
//	GET    /api/v1/date/{date}
//	GET    /api/v1/jewish/{year}/{month}/{day}
//	GET    /api/v1/years/{year}
//	GET    /api/v1/molad/{year}/{month}
//	GET    /api/v1/events/{name}
//	GET    /api/v1/range
//	GET    /api/v1/admin/cache             (API key)
//	POST   /api/v1/admin/cache/warm        (API key)
//	DELETE /api/v1/admin/cache/{year}      (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		middleware.RealIP,
		LoggingMiddleware(logger),
		CORSMiddleware(),
		middleware.Timeout(30*time.Second),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/today", handlers.GetToday)
		r.Get("/date/{date}", handlers.GetDate)
		r.Get("/jewish/{year}/{month}/{day}", handlers.GetJewishDate)
		r.Get("/years/{year}", handlers.GetYear)
		r.Get("/molad/{year}/{month}", handlers.GetMolad)
		r.Get("/events/{name}", handlers.GetEvent)
		r.Get("/range", handlers.GetRange)

		// ======================================================================
		// Admin routes (API key only)
		// ======================================================================
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminOnlyMiddleware(cfg, logger))
			r.Get("/cache", handlers.ListCache)
			r.Post("/cache/warm", handlers.WarmCache)
			r.Delete("/cache/{year}", handlers.DeleteCache)
		})
	})

	return r
}
