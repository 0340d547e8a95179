package auth

import (
	"context"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

type accountKey struct{}

func ContextWithAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, accountKey{}, a)
}

func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(accountKey{}).(domain.Account)
	return a, ok
}
