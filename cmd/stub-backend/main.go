// Command stub-backend stands in for the connector and ledger services so
// the public API can run end to end locally. Both backends share one
// in-memory store and one port; their paths do not overlap.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"

	"github.com/josh-kwaku/pay-publicapi/internal/logging"
)

type stubConfig struct {
	Port     int    `env:"PORT" envDefault:"9300"`
	BaseURL  string `env:"STUB_BASE_URL" envDefault:"http://localhost:9300"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	cfg, err := env.ParseAs[stubConfig]()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Init("stub-backend", cfg.LogLevel, cfg.AppEnv)

	s := newStub(cfg.BaseURL)

	r := chi.NewRouter()
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.connectorRoutes(r)
	s.ledgerRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("stub backend started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// writeError answers in the connector's error shape.
func writeError(w http.ResponseWriter, status int, identifier, message string) {
	writeJSON(w, status, map[string]any{
		"error_identifier": identifier,
		"message":          []string{message},
	})
}
