package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/condorpay/banking/internal/adapter/http/handler"
	"github.com/condorpay/banking/internal/adapter/http/middleware"
	"github.com/condorpay/banking/internal/infrastructure/auth"
	"github.com/condorpay/banking/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	AliasHandler       *handler.AliasHandler
	CarrierHandler     *handler.CarrierHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	JWTManager         *auth.JWTManager
	AuthEnabled        bool
	RateLimiter        *middleware.RateLimiter
	RequestLogger      *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Get("/carriers", cfg.CarrierHandler.List)

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", cfg.TransactionHandler.Transfer)
			})

			r.Route("/topups", func(r chi.Router) {
				r.Post("/", cfg.TransactionHandler.TopUp)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/{id}", cfg.TransactionHandler.Get)
				r.Post("/{id}/reverse", cfg.TransactionHandler.Reverse)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
				r.Get("/{id}/topups/stats", cfg.TransactionHandler.TopUpStats)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/{id}/accounts", cfg.AccountHandler.ListByClient)
				r.Get("/{id}/aliases", cfg.AliasHandler.ListByClient)
			})

			r.Get("/aliases/{value}", cfg.AliasHandler.Lookup)
		})
	})

	return r
}
