package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/josh-kwaku/pay-publicapi/internal/source"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	PublicAPIBaseURL string `env:"PUBLIC_API_BASE_URL,required"`
	TokenSecret      string `env:"TOKEN_SECRET,required"`

	ConnectorURL      string        `env:"CONNECTOR_URL,required"`
	LedgerURL         string        `env:"LEDGER_URL,required"`
	BackendTimeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	BackendSourceMode string        `env:"BACKEND_SOURCE_MODE" envDefault:"default"`

	RedisAddr         string        `env:"REDIS_ADDR"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"1000"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	OTelExporterEndpoint string `env:"OTEL_EXPORTER_ENDPOINT"`
	ServiceName          string `env:"SERVICE_NAME" envDefault:"pay-publicapi"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// SourceMode is the configured backend source. Values other than the two
// override tokens mean the default strategy.
func (c *Config) SourceMode() source.Mode {
	m, _ := source.ParseMode(c.BackendSourceMode)
	return m
}

func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddr != ""
}
