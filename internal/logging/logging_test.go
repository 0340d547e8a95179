package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNew_RedactsSensitiveKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "card number", key: "card_number"},
		{name: "cvc", key: "cvc"},
		{name: "authorization header", key: "Authorization"},
		{name: "bearer token", key: "token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, "pay-publicapi", "info", "production").Info("authorising", tt.key, "4242424242424242")

			line := decodeLine(t, &buf)
			assert.Equal(t, redacted, line[tt.key])
			assert.Equal(t, "pay-publicapi", line["service"])
		})
	}
}

func TestNew_KeepsOrdinaryAttributes(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "pay-publicapi", "info", "production").Info("payment created", "payment_id", "pay_123")

	assert.Equal(t, "pay_123", decodeLine(t, &buf)["payment_id"])
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "pay-publicapi", "warn", "production")

	logger.Info("ignored")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "pay-publicapi", "info", "production")

	ctx := With(WithLogger(context.Background(), base), "account_id", "42")
	FromContext(ctx).Info("request completed")

	line := decodeLine(t, &buf)
	assert.Equal(t, "42", line["account_id"])
}

func TestFromContext_DefaultsToSlogDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
