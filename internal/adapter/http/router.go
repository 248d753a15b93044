package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/bankstatement/internal/adapter/http/handler"
	"github.com/iho/bankstatement/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
	// RateLimiter, when set, throttles deposits and withdrawals.
	RateLimiter    *middleware.RateLimiter
	MetricsEnabled bool
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	r.Route("/api/v1/account", func(r chi.Router) {
		r.Get("/", cfg.AccountHandler.Get)
		r.Get("/transactions", cfg.AccountHandler.ListTransactions)
		r.Get("/statement", cfg.AccountHandler.Statement)
		r.Get("/consistency", cfg.AccountHandler.Consistency)

		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Limit)
			}
			r.Post("/deposits", cfg.AccountHandler.Deposit)
			r.Post("/withdrawals", cfg.AccountHandler.Withdraw)
		})
	})

	return r
}
