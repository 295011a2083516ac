package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CustomerHandler *handler.CustomerHandler
	AccountHandler  *handler.AccountHandler
	TransferHandler *handler.TransferHandler
	CardHandler     *handler.CardHandler
	DeviceHandler   *handler.DeviceHandler
	ExchangeHandler *handler.ExchangeHandler
	InvoiceHandler  *handler.InvoiceHandler
	HealthHandler   *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter

	// Metrics and Gatherer are optional; /metrics is served only when
	// Gatherer is set.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Get("/", cfg.CustomerHandler.List)
			r.Get("/{id}", cfg.CustomerHandler.Get)
			r.Delete("/{id}", cfg.CustomerHandler.Delete)
			r.Post("/{id}/notify", cfg.CustomerHandler.Notify)
			r.Get("/{id}/tier", cfg.CustomerHandler.Tier)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/deposit", cfg.AccountHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.AccountHandler.Withdraw)
			r.Put("/{id}/interest-rate", cfg.AccountHandler.SetInterestRate)
			r.Post("/{id}/interest-rate/tier", cfg.AccountHandler.ApplyTierInterestRate)
			r.Post("/{id}/interest", cfg.AccountHandler.ApplyInterest)
			r.Post("/{id}/close", cfg.AccountHandler.Close)
			r.Get("/{id}/history", cfg.AccountHandler.History)
			r.Get("/{id}/entries", cfg.AccountHandler.Entries)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Post("/repeat/{entryID}", cfg.TransferHandler.Repeat)
		})

		// Cards
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cfg.CardHandler.Create)
			r.Get("/{id}", cfg.CardHandler.Get)
			r.Post("/{id}/purchase", cfg.CardHandler.Purchase)
			r.Put("/{id}/limit", cfg.CardHandler.SetLimit)
		})

		// Devices and the capital backing them
		r.Get("/capital", cfg.DeviceHandler.Capital)
		r.Route("/devices", func(r chi.Router) {
			r.Post("/", cfg.DeviceHandler.Create)
			r.Get("/", cfg.DeviceHandler.List)
			r.Get("/{id}", cfg.DeviceHandler.Get)
			r.Delete("/{id}", cfg.DeviceHandler.Delete)
			r.Post("/{id}/withdraw", cfg.DeviceHandler.Withdraw)
			r.Post("/{id}/deposit", cfg.DeviceHandler.Deposit)
			r.Post("/{id}/balance", cfg.DeviceHandler.Balance)
			r.Post("/{id}/message", cfg.DeviceHandler.Message)
			r.Post("/{id}/appointments", cfg.DeviceHandler.BookAppointment)
			r.Post("/{id}/appointments/cancel", cfg.DeviceHandler.CancelAppointment)
			r.Post("/{id}/appointments/pay", cfg.DeviceHandler.PayAppointment)
		})

		// Exchange rates
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", cfg.ExchangeHandler.List)
			r.Put("/", cfg.ExchangeHandler.Change)
			r.Post("/disable", cfg.ExchangeHandler.Disable)
			r.Post("/enable", cfg.ExchangeHandler.Enable)
			r.Get("/{from}/{to}", cfg.ExchangeHandler.Get)
			r.Get("/{from}/{to}/convert", cfg.ExchangeHandler.Convert)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", cfg.InvoiceHandler.Create)
			r.Get("/{number}", cfg.InvoiceHandler.Get)
			r.Post("/{number}/accept", cfg.InvoiceHandler.Accept)
			r.Post("/{number}/reject", cfg.InvoiceHandler.Reject)
			r.Post("/{number}/pay", cfg.InvoiceHandler.Pay)
		})
	})

	return r
}
