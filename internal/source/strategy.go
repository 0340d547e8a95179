package source

import (
	"context"
	"errors"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/observability"
)

// Fetch performs one read against one backend.
type Fetch[T any] func(ctx context.Context) (T, error)

// Strategy holds the per-mode behaviour of one read operation. Resolve
// performs no transformation of the result.
type Strategy[T any] struct {
	Operation  string
	LedgerOnly Fetch[T]
	// FutureBehaviour defaults to LedgerOnly when nil.
	FutureBehaviour Fetch[T]
	Default         Fetch[T]
}

func (s Strategy[T]) Resolve(ctx context.Context, mode Mode) (T, error) {
	fetch := s.Default
	switch mode {
	case ModeLedgerOnly:
		fetch = s.LedgerOnly
	case ModeFutureBehaviour:
		fetch = s.FutureBehaviour
		if fetch == nil {
			fetch = s.LedgerOnly
		}
	default:
		mode = ModeDefault
	}

	observability.BackendSourceSelections.WithLabelValues(s.Operation, string(mode)).Inc()
	return fetch(ctx)
}

// WithFallback tries primary and, only when it reports the resource as not
// found, answers from secondary. Validation, auth and transport failures
// from primary are returned unchanged.
func WithFallback[T any](operation string, primary, secondary Fetch[T]) Fetch[T] {
	return func(ctx context.Context) (T, error) {
		v, err := primary(ctx)
		if err == nil || !errors.Is(err, domain.ErrNotFound) {
			return v, err
		}

		logging.FromContext(ctx).Info("primary backend has no record, falling back",
			"operation", operation,
			"error", err,
		)
		observability.BackendFallbacks.WithLabelValues(operation).Inc()
		return secondary(ctx)
	}
}
