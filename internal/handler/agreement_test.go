package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

func TestPaymentHandler_CreateAgreement(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakePayments{agreement: domain.Agreement{ID: "agr_1", Reference: "r", Description: "d", Status: "created"}}
		rec := do(t, newTestServer(svc, testAccount), http.MethodPost, "/v1/agreements", `{"reference":"r","description":"d"}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"agreement_id":"agr_1"`)
	})

	t.Run("missing description", func(t *testing.T) {
		rec := do(t, newTestServer(&fakePayments{}, testAccount), http.MethodPost, "/v1/agreements", `{"reference":"r"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "P2101", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("rejected by connector", func(t *testing.T) {
		svc := &fakePayments{err: fmt.Errorf("CreateAgreement: %w", domain.ErrBackendValidation)}
		rec := do(t, newTestServer(svc, testAccount), http.MethodPost, "/v1/agreements", `{"reference":"r","description":"d"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "P2100", decodeEnvelope(t, rec).Error.Code)
	})
}

func TestPaymentHandler_CreateMandate(t *testing.T) {
	body := `{"return_url":"https://service.example/back","reference":"m-1"}`
	ddAccount := domain.Account{ID: "7", TokenType: domain.TokenTypeDirectDebit}

	t.Run("created", func(t *testing.T) {
		svc := &fakePayments{mandate: domain.Mandate{
			ID:        "man_1",
			Reference: "m-1",
			ReturnURL: "https://service.example/back",
			State:     "created",
			NextURL:   &domain.Link{Href: "https://dd.example/start", Method: http.MethodGet},
		}}
		rec := do(t, newTestServer(svc, ddAccount), http.MethodPost, "/v1/directdebit/mandates", body)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, testBaseURL+"/v1/directdebit/mandates/man_1", rec.Header().Get("Location"))
	})

	t.Run("card token denied", func(t *testing.T) {
		svc := &fakePayments{err: fmt.Errorf("CreateMandate: %w", domain.ErrTokenTypeNotAllowed)}
		rec := do(t, newTestServer(svc, testAccount), http.MethodPost, "/v1/directdebit/mandates", body)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "P0920", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("invalid return url", func(t *testing.T) {
		rec := do(t, newTestServer(&fakePayments{}, ddAccount), http.MethodPost, "/v1/directdebit/mandates",
			`{"return_url":"nope","reference":"m-1"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "P2202", decodeEnvelope(t, rec).Error.Code)
	})
}
