package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/josh-kwaku/pay-publicapi/internal/backend"
	"github.com/josh-kwaku/pay-publicapi/internal/config"
	"github.com/josh-kwaku/pay-publicapi/internal/handler"
	"github.com/josh-kwaku/pay-publicapi/internal/links"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/middleware"
	"github.com/josh-kwaku/pay-publicapi/internal/observability"
	"github.com/josh-kwaku/pay-publicapi/internal/ratelimit"
	"github.com/josh-kwaku/pay-publicapi/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.ServiceName, cfg.LogLevel, cfg.AppEnv)

	shutdownTracer, err := observability.InitTracer(context.Background(), cfg.OTelExporterEndpoint, cfg.ServiceName)
	if err != nil {
		slog.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}

	var limiter *ratelimit.Limiter
	checks := map[string]handler.Pinger{}
	if cfg.RateLimitEnabled() {
		limiter = ratelimit.New(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.RateLimitRequests, cfg.RateLimitWindow)
		defer limiter.Close()
		checks["redis"] = limiter
		if err := limiter.Ping(context.Background()); err != nil {
			slog.Warn("redis unreachable at startup, rate limiting fails open", "addr", cfg.RedisAddr, "error", err)
		}
	}

	rewriter := links.NewRewriter(cfg.PublicAPIBaseURL)
	payments := service.NewPaymentService(
		backend.NewConnectorClient(cfg.ConnectorURL, cfg.BackendTimeout),
		backend.NewLedgerClient(cfg.LedgerURL, cfg.BackendTimeout),
		rewriter,
	)

	paymentHandler := handler.NewPaymentHandler(payments, rewriter, cfg.SourceMode())
	healthHandler := handler.NewHealthHandler(checks)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(observability.Metrics)

	r.Get("/healthcheck", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenSecret))
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter))
		}
		paymentHandler.Routes(r)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           observability.Tracing(cfg.ServiceName)(r),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.BackendTimeout*2 + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started",
			"addr", addr,
			"backend_source_mode", cfg.SourceMode(),
			"rate_limiting", limiter != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := shutdownTracer(ctx); err != nil {
		slog.Warn("tracer shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
