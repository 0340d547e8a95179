package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/josh-kwaku/pay-publicapi/internal/auth"
	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/links"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/source"
	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

const maxBodyBytes = 1 << 20

type paymentService interface {
	GetPayment(ctx context.Context, account domain.Account, mode source.Mode, paymentID string) (domain.Payment, error)
	GetPaymentEvents(ctx context.Context, account domain.Account, mode source.Mode, paymentID string) (domain.PaymentEvents, error)
	SearchPayments(ctx context.Context, account domain.Account, mode source.Mode, params request.PaymentSearch) (domain.SearchPage[domain.Payment], error)
	CreatePayment(ctx context.Context, account domain.Account, p *request.CreatePayment, idempotencyKey string) (domain.Payment, error)
	CancelPayment(ctx context.Context, account domain.Account, paymentID string) error
	CapturePayment(ctx context.Context, account domain.Account, paymentID string) error
	AuthorisePayment(ctx context.Context, a *request.Authorisation) error

	GetRefunds(ctx context.Context, account domain.Account, mode source.Mode, paymentID string) (domain.Refunds, error)
	GetRefund(ctx context.Context, account domain.Account, mode source.Mode, paymentID, refundID string) (domain.Refund, error)
	SearchRefunds(ctx context.Context, account domain.Account, mode source.Mode, params request.RefundSearch) (domain.SearchPage[domain.Refund], error)
	CreateRefund(ctx context.Context, account domain.Account, paymentID string, r *request.CreateRefund) (domain.Refund, error)

	CreateAgreement(ctx context.Context, account domain.Account, a *request.CreateAgreement) (domain.Agreement, error)
	CreateMandate(ctx context.Context, account domain.Account, m *request.CreateMandate) (domain.Mandate, error)
}

type PaymentHandler struct {
	payments paymentService
	links    *links.Rewriter
	mode     source.Mode
}

// NewPaymentHandler serves the public payment resources. mode is the
// configured backend source, overridable per request with source.Header.
func NewPaymentHandler(payments paymentService, rewriter *links.Rewriter, mode source.Mode) *PaymentHandler {
	return &PaymentHandler{payments: payments, links: rewriter, mode: mode}
}

func (h *PaymentHandler) sourceMode(r *http.Request) source.Mode {
	return source.Select(r.Context(), r.Header.Get(source.Header), h.mode)
}

// account returns the caller's account, responding 401 when the auth
// middleware did not run.
func account(w http.ResponseWriter, r *http.Request) (domain.Account, bool) {
	a, ok := auth.AccountFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrUnauthorised, nil)
	}
	return a, ok
}

// readBody reads the request body. A body that cannot be read is reported
// the same way as one that cannot be parsed.
func readBody(w http.ResponseWriter, r *http.Request, family validation.Family) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		RespondValidationReport(w, validation.Fail(family, validation.UnableToParseJSON()))
		return nil, false
	}
	return body, true
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r, validation.CreatePaymentFamily)
	if !ok {
		return
	}

	req, err := request.DecodeCreatePayment(body, request.Options{HTTPSOnly: acc.IsLive()})
	if err != nil {
		respondError(w, r, createPaymentErrors, err)
		return
	}

	p, err := h.payments.CreatePayment(r.Context(), acc, req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		respondError(w, r, createPaymentErrors, err)
		return
	}

	dto := toPaymentDTO(p, h.links)
	w.Header().Set("Location", dto.Links.Self.Href)
	RespondSuccess(w, http.StatusCreated, dto)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}

	p, err := h.payments.GetPayment(r.Context(), acc, h.sourceMode(r), chi.URLParam(r, "paymentId"))
	if err != nil {
		respondError(w, r, getPaymentErrors, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toPaymentDTO(p, h.links))
}

func (h *PaymentHandler) Events(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}
	paymentID := chi.URLParam(r, "paymentId")

	events, err := h.payments.GetPaymentEvents(r.Context(), acc, h.sourceMode(r), paymentID)
	if err != nil {
		respondError(w, r, getEventsErrors, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toEventsDTO(events, paymentID, h.links))
}

func (h *PaymentHandler) Search(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}

	params, err := request.DecodePaymentSearch(r.URL.Query())
	if err != nil {
		respondError(w, r, searchPaymentsErrors, err)
		return
	}

	page, err := h.payments.SearchPayments(r.Context(), acc, h.sourceMode(r), params)
	if err != nil {
		respondError(w, r, searchPaymentsErrors, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toSearchDTO(page, func(p domain.Payment) paymentDTO {
		return toPaymentDTO(p, h.links)
	}))
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}

	if err := h.payments.CancelPayment(r.Context(), acc, chi.URLParam(r, "paymentId")); err != nil {
		respondError(w, r, cancelErrors, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}

	if err := h.payments.CapturePayment(r.Context(), acc, chi.URLParam(r, "paymentId")); err != nil {
		respondError(w, r, captureErrors, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Authorise completes a MOTO API payment with card details. The details
// are never logged.
func (h *PaymentHandler) Authorise(w http.ResponseWriter, r *http.Request) {
	if _, ok := account(w, r); !ok {
		return
	}
	body, ok := readBody(w, r, validation.AuthorisationFamily)
	if !ok {
		return
	}

	req, err := request.DecodeAuthorisation(body)
	if err != nil {
		respondError(w, r, authoriseErrors, err)
		return
	}

	if err := h.payments.AuthorisePayment(r.Context(), req); err != nil {
		respondError(w, r, authoriseErrors, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Routes registers the authenticated public API under r.
func (h *PaymentHandler) Routes(r chi.Router) {
	r.Route("/v1/payments", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.Search)
		r.Get("/{paymentId}", h.Get)
		r.Get("/{paymentId}/events", h.Events)
		r.Post("/{paymentId}/cancel", h.Cancel)
		r.Post("/{paymentId}/capture", h.Capture)
		r.Get("/{paymentId}/refunds", h.ListRefunds)
		r.Post("/{paymentId}/refunds", h.CreateRefund)
		r.Get("/{paymentId}/refunds/{refundId}", h.GetRefund)
	})
	r.Get("/v1/refunds", h.SearchRefunds)
	r.Post("/v1/auth", h.Authorise)
	r.Post("/v1/agreements", h.CreateAgreement)
	r.Post("/v1/directdebit/mandates", h.CreateMandate)
}
