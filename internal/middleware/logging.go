package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/josh-kwaku/pay-publicapi/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessEntry collects fields set by inner middleware for the access log.
type accessEntry struct {
	accountID string
}

type accessEntryKey struct{}

func setAccessAccount(ctx context.Context, accountID string) {
	if e, ok := ctx.Value(accessEntryKey{}).(*accessEntry); ok {
		e.accountID = accountID
	}
}

// Logging stores a request-scoped logger in the context and writes one
// access log line per request. Health and metrics scrapes are not logged.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		ctx := logging.With(r.Context(), "request_id", RequestIDFromContext(r.Context()))
		logger := logging.FromContext(ctx)
		entry := &accessEntry{}
		r = r.WithContext(context.WithValue(ctx, accessEntryKey{}, entry))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if entry.accountID != "" {
			attrs = append(attrs, "account_id", entry.accountID)
		}
		logger.Info("request completed", attrs...)
	})
}
