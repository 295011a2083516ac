package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	// Bank
	BankName    string          `env:"BANK_NAME"    envDefault:"Nordea" validate:"required"`
	BankCapital decimal.Decimal `env:"BANK_CAPITAL" envDefault:"100000"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080" validate:"required,numeric"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Rate limiting (requests per second per client, 0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50" validate:"gte=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100" validate:"gte=1"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"    validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=json console"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Redis holds idempotency keys outside the process; empty keeps them in memory.
	RedisURL string `env:"REDIS_URL" validate:"omitempty,url"`
}

var validate = validator.New()

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints that env parsing cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.BankCapital.IsNegative() {
		return fmt.Errorf("invalid config: BANK_CAPITAL must not be negative, got %s", c.BankCapital)
	}
	if c.IdempotencyTTL <= 0 {
		return fmt.Errorf("invalid config: IDEMPOTENCY_TTL must be positive, got %s", c.IdempotencyTTL)
	}
	return nil
}
