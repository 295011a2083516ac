// Package app wires the bank's repositories, use cases and HTTP adapter.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/adapter/repository/memory"
	redisRepo "github.com/iho/gobank/internal/adapter/repository/redis"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/exchange"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// Bank holds one bank's state and the use cases operating on it.
type Bank struct {
	Name string

	Rates       *exchange.Table
	Capital     *domain.CapitalPool
	Idempotency usecase.IdempotencyStore
	RateLimiter *middleware.RateLimiter

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Customers *usecase.CustomerUseCase
	Accounts  *usecase.AccountUseCase
	Transfers *usecase.TransferUseCase
	Entries   *usecase.EntryUseCase
	Cards     *usecase.CardUseCase
	Devices   *usecase.DeviceUseCase
	Invoices  *usecase.InvoiceUseCase
	Exchange  *usecase.ExchangeUseCase

	cfg    *config.Config
	redis  *redislib.Client
	logger zerolog.Logger
}

// sweeper is an idempotency store that must drop expired keys itself.
type sweeper interface {
	Sweep() int
}

// New builds an in-memory bank holding cfg.BankCapital.
func New(cfg *config.Config, logger zerolog.Logger) (*Bank, error) {
	capital, err := domain.NewCapitalPool(cfg.BankCapital)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize repositories
	customerRepo := memory.NewCustomerRepository()
	accountRepo := memory.NewAccountRepository()
	cardRepo := memory.NewCardRepository()
	deviceRepo := memory.NewDeviceRepository()
	invoiceRepo := memory.NewInvoiceRepository()
	entryRepo := memory.NewEntryRepository()
	idGen := memory.NewULIDGenerator()
	rates := exchange.NewTable()

	b := &Bank{
		Name:        cfg.BankName,
		Rates:       rates,
		Capital:     capital,
		Idempotency: memory.NewIdempotencyStore(),
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
		Registry:    registry,
		Metrics:     m,
		cfg:         cfg,
		logger:      logger,
	}

	if cfg.RedisURL != "" {
		opts, err := redislib.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		b.redis = redislib.NewClient(opts)
		b.Idempotency = redisRepo.NewIdempotencyStore(b.redis)
		logger.Info().Str("addr", opts.Addr).Msg("idempotency keys stored in redis")
	}

	// Initialize use cases
	b.Customers = usecase.NewCustomerUseCase(customerRepo, cardRepo, rates, idGen, m, logger)
	b.Accounts = usecase.NewAccountUseCase(accountRepo, customerRepo, cardRepo, entryRepo, rates, idGen, m, logger)
	b.Transfers = usecase.NewTransferUseCase(accountRepo, entryRepo, idGen, m, logger)
	b.Entries = usecase.NewEntryUseCase(entryRepo)
	b.Cards = usecase.NewCardUseCase(cardRepo, accountRepo, customerRepo, entryRepo, idGen, m, logger)
	b.Devices = usecase.NewDeviceUseCase(deviceRepo, cardRepo, customerRepo, accountRepo, entryRepo, capital, idGen, m, logger)
	b.Invoices = usecase.NewInvoiceUseCase(invoiceRepo, customerRepo, accountRepo, entryRepo, idGen, m, logger)
	b.Exchange = usecase.NewExchangeUseCase(rates, m, logger)

	logger.Info().
		Str("bank", cfg.BankName).
		Str("capital", cfg.BankCapital.String()).
		Msg("bank initialized")

	return b, nil
}

// Router returns the HTTP API of the bank.
func (b *Bank) Router() http.Handler {
	return httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CustomerHandler: handler.NewCustomerHandler(b.Customers),
		AccountHandler:  handler.NewAccountHandler(b.Accounts, b.Entries),
		TransferHandler: handler.NewTransferHandler(b.Transfers),
		CardHandler:     handler.NewCardHandler(b.Cards),
		DeviceHandler:   handler.NewDeviceHandler(b.Devices),
		ExchangeHandler: handler.NewExchangeHandler(b.Exchange),
		InvoiceHandler:  handler.NewInvoiceHandler(b.Invoices),
		HealthHandler: handler.NewHealthHandler(b.checks()),
		IdempotencyStore: b.Idempotency,
		IdempotencyTTL:   b.cfg.IdempotencyTTL,
		RateLimiter:      b.RateLimiter,
		Metrics:          b.Metrics,
		Gatherer:         b.Registry,
		Logger:           b.logger,
	})
}

func (b *Bank) checks() map[string]handler.Check {
	checks := map[string]handler.Check{
		"rates": b.checkRates,
	}
	if b.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return b.redis.Ping(ctx).Err()
		}
	}
	return checks
}

func (b *Bank) checkRates(context.Context) error {
	if len(b.Rates.Rates()) == 0 {
		return errors.New("exchange rate table is empty")
	}
	return nil
}

// RunMaintenance drops expired idempotency keys and idle rate limiters
// every interval until ctx is done.
func (b *Bank) RunMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			keys := 0
			if s, ok := b.Idempotency.(sweeper); ok {
				keys = s.Sweep()
			}
			limiters := b.RateLimiter.CleanupLimiters(interval)
			if keys > 0 || limiters > 0 {
				b.logger.Debug().
					Int("idempotency_keys", keys).
					Int("rate_limiters", limiters).
					Msg("maintenance sweep")
			}
		}
	}
}

// Close releases external connections.
func (b *Bank) Close() error {
	if b.redis == nil {
		return nil
	}
	return b.redis.Close()
}
