// Package backend talks to the two services behind the gateway: the
// connector, which owns payment state and accepts writes, and the ledger,
// which serves an immutable history of transactions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/observability"
)

const (
	NameConnector = "connector"
	NameLedger    = "ledger"
)

type client struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

func newClient(name, baseURL string, timeout time.Duration) client {
	return client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: observability.Transport(nil),
		},
	}
}

type call struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	headers map[string]string
	out     any
}

// do sends c and decodes a 2xx body into c.out. Transport failures,
// including timeouts, are wrapped with domain.ErrBackendUnavailable; error
// statuses come back as *Error.
func (cl client) do(ctx context.Context, c call) error {
	log := logging.FromContext(ctx)

	target := cl.baseURL + c.path
	if len(c.query) > 0 {
		target += "?" + c.query.Encode()
	}

	var reqBody io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", c.op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, target, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	log.Debug("backend request sent", "backend", cl.name, "operation", c.op)

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		observability.BackendRequestDuration.WithLabelValues(cl.name, c.op, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%s: send: %w: %w", c.op, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	observability.BackendRequestDuration.WithLabelValues(cl.name, c.op, strconv.Itoa(resp.StatusCode)).Observe(elapsed.Seconds())
	log.Info("backend response received",
		"backend", cl.name,
		"operation", c.op,
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", c.op, newError(cl.name, resp))
	}

	if c.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(c.out); err != nil {
		return fmt.Errorf("%s: decode: %w", c.op, err)
	}
	return nil
}
