package middleware

import (
	"net/http"
	"strings"

	"github.com/josh-kwaku/pay-publicapi/internal/auth"
	"github.com/josh-kwaku/pay-publicapi/internal/handler"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
)

// Auth resolves the bearer token to an account. The account and an
// account-scoped logger are stored in the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrUnauthorised, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrUnauthorised, nil)
				return
			}

			account, err := auth.ValidateToken(token, secret)
			if err != nil {
				logging.FromContext(r.Context()).Warn("bearer token rejected", "error", err)
				handler.RespondAppError(w, handler.ErrUnauthorised, nil)
				return
			}

			setAccessAccount(r.Context(), account.ID)
			ctx := auth.ContextWithAccount(r.Context(), account)
			ctx = logging.With(ctx, "account_id", account.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
