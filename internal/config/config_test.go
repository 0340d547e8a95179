package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/source"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PUBLIC_API_BASE_URL", "https://publicapi.test")
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("CONNECTOR_URL", "http://connector:9300")
	t.Setenv("LEDGER_URL", "http://ledger:10700")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, source.ModeDefault, cfg.SourceMode())
	assert.False(t, cfg.RateLimitEnabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("PUBLIC_API_BASE_URL", "https://publicapi.test")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_SourceMode(t *testing.T) {
	tests := []struct {
		raw  string
		want source.Mode
	}{
		{"ledger-only", source.ModeLedgerOnly},
		{"future-behaviour", source.ModeFutureBehaviour},
		{"default", source.ModeDefault},
		{"LEDGER-ONLY", source.ModeDefault},
		{"", source.ModeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := Config{BackendSourceMode: tt.raw}
			assert.Equal(t, tt.want, cfg.SourceMode())
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BACKEND_SOURCE_MODE", "ledger-only")
	t.Setenv("BACKEND_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, source.ModeLedgerOnly, cfg.SourceMode())
	assert.Equal(t, 2*time.Second, cfg.BackendTimeout)
	assert.True(t, cfg.RateLimitEnabled())
}
