package handler

import (
	"net/http"

	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

func (h *PaymentHandler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r, validation.CreateAgreementFamily)
	if !ok {
		return
	}

	req, err := request.DecodeCreateAgreement(body)
	if err != nil {
		respondError(w, r, createAgreementErrors, err)
		return
	}

	a, err := h.payments.CreateAgreement(r.Context(), acc, req)
	if err != nil {
		respondError(w, r, createAgreementErrors, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAgreementDTO(a))
}

// CreateMandate is only available to direct debit accounts; the service
// enforces that.
func (h *PaymentHandler) CreateMandate(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r, validation.CreateMandateFamily)
	if !ok {
		return
	}

	req, err := request.DecodeCreateMandate(body, request.Options{HTTPSOnly: acc.IsLive()})
	if err != nil {
		respondError(w, r, createMandateErrors, err)
		return
	}

	m, err := h.payments.CreateMandate(r.Context(), acc, req)
	if err != nil {
		respondError(w, r, createMandateErrors, err)
		return
	}

	dto := toMandateDTO(m, h.links)
	w.Header().Set("Location", dto.Links.Self.Href)
	RespondSuccess(w, http.StatusCreated, dto)
}
