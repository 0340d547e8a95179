package middleware

import (
	"context"
	"net/http"

	"github.com/josh-kwaku/pay-publicapi/internal/auth"
	"github.com/josh-kwaku/pay-publicapi/internal/handler"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/observability"
)

type limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit budgets requests per account. It must run after Auth. When the
// limiter store fails the request is let through.
func RateLimit(l limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := auth.AccountFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := l.Allow(r.Context(), account.ID)
			if err != nil {
				logging.FromContext(r.Context()).Error("rate limit check failed, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				observability.RateLimited.Inc()
				handler.RespondAppError(w, handler.ErrTooManyRequests, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
