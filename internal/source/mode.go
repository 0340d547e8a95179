// Package source chooses which backend answers a read: the connector, which
// owns live payment state, or the ledger, which holds an immutable copy.
package source

import (
	"context"

	"github.com/josh-kwaku/pay-publicapi/internal/logging"
)

// Header lets a caller override the configured mode for one request.
const Header = "X-Backend-Source"

type Mode string

const (
	ModeDefault         Mode = "default"
	ModeLedgerOnly      Mode = "ledger-only"
	ModeFutureBehaviour Mode = "future-behaviour"
)

// ParseMode recognises the two override tokens. Anything else, including
// "default", is not an override.
func ParseMode(raw string) (Mode, bool) {
	switch m := Mode(raw); m {
	case ModeLedgerOnly, ModeFutureBehaviour:
		return m, true
	default:
		return ModeDefault, false
	}
}

// Select returns the mode for one request. An unrecognised override is
// ignored with a warning and never fails the request.
func Select(ctx context.Context, override string, configured Mode) Mode {
	if override == "" {
		return configured
	}
	m, ok := ParseMode(override)
	if !ok {
		logging.FromContext(ctx).Warn("unrecognised backend source, ignoring",
			"header", Header,
			"value", override,
		)
		return configured
	}
	return m
}
