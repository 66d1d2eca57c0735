package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/coinbank/internal/adapter/http/handler"
	"github.com/iho/coinbank/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EconomyHandler *handler.EconomyHandler
	HealthHandler  *handler.HealthHandler
	Logging        *middleware.LoggingMiddleware
	Metrics        *middleware.MetricsMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.EconomyHandler.EnsureAccount)
			r.Get("/{id}/balance", cfg.EconomyHandler.GetBalance)
			r.Get("/{id}/transactions", cfg.EconomyHandler.TransactionHistory)
		})

		r.Post("/transfers", cfg.EconomyHandler.Transfer)
	})

	return r
}
