package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

const (
	identifierRefundNotAvailable = "REFUND_NOT_AVAILABLE"
	identifierAccountNotLinked   = "ACCOUNT_NOT_LINKED_WITH_PSP"
)

// Error is a non-2xx answer from a backend. It matches the domain sentinels
// through errors.Is so callers never inspect status codes.
type Error struct {
	Backend         string
	StatusCode      int
	ErrorIdentifier string
	Reason          string
	Messages        []string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s responded %d", e.Backend, e.StatusCode)
	if e.ErrorIdentifier != "" {
		msg += " " + e.ErrorIdentifier
	}
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrBackendValidation:
		return (e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity) &&
			e.ErrorIdentifier != identifierRefundNotAvailable &&
			e.ErrorIdentifier != identifierAccountNotLinked
	case domain.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case domain.ErrRefundNotAvailable:
		return e.ErrorIdentifier == identifierRefundNotAvailable
	case domain.ErrRefundAmountMismatch:
		return e.StatusCode == http.StatusPreconditionFailed
	case domain.ErrAccountNotLinked:
		return e.ErrorIdentifier == identifierAccountNotLinked
	case domain.ErrBackendUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

type errorBody struct {
	Message         json.RawMessage `json:"message"`
	ErrorIdentifier string          `json:"error_identifier"`
	Reason          string          `json:"reason"`
}

// newError reads a backend error body. Connector sends message as a list,
// ledger as a string; either may be absent.
func newError(backend string, resp *http.Response) *Error {
	e := &Error{Backend: backend, StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		if s := strings.TrimSpace(string(raw)); s != "" {
			e.Messages = []string{s}
		}
		return e
	}

	e.ErrorIdentifier = body.ErrorIdentifier
	e.Reason = body.Reason

	var list []string
	var single string
	switch {
	case json.Unmarshal(body.Message, &list) == nil:
		e.Messages = list
	case json.Unmarshal(body.Message, &single) == nil && single != "":
		e.Messages = []string{single}
	}
	return e
}
