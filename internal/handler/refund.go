package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

func (h *PaymentHandler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r, validation.CreateRefundFamily)
	if !ok {
		return
	}

	req, err := request.DecodeCreateRefund(body)
	if err != nil {
		respondError(w, r, createRefundErrors, err)
		return
	}

	refund, err := h.payments.CreateRefund(r.Context(), acc, chi.URLParam(r, "paymentId"), req)
	if err != nil {
		respondError(w, r, createRefundErrors, err)
		return
	}

	dto := toRefundDTO(refund, h.links)
	w.Header().Set("Location", dto.Links.Self.Href)
	RespondSuccess(w, http.StatusAccepted, dto)
}

func (h *PaymentHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}
	paymentID := chi.URLParam(r, "paymentId")

	refunds, err := h.payments.GetRefunds(r.Context(), acc, h.sourceMode(r), paymentID)
	if err != nil {
		respondError(w, r, listRefundsErrors, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toRefundsDTO(refunds, paymentID, h.links))
}

func (h *PaymentHandler) GetRefund(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}

	refund, err := h.payments.GetRefund(r.Context(), acc, h.sourceMode(r),
		chi.URLParam(r, "paymentId"), chi.URLParam(r, "refundId"))
	if err != nil {
		respondError(w, r, getRefundErrors, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toRefundDTO(refund, h.links))
}

func (h *PaymentHandler) SearchRefunds(w http.ResponseWriter, r *http.Request) {
	acc, ok := account(w, r)
	if !ok {
		return
	}

	params, err := request.DecodeRefundSearch(r.URL.Query())
	if err != nil {
		respondError(w, r, searchRefundsErrors, err)
		return
	}

	page, err := h.payments.SearchRefunds(r.Context(), acc, h.sourceMode(r), params)
	if err != nil {
		respondError(w, r, searchRefundsErrors, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toSearchDTO(page, func(rf domain.Refund) refundDTO {
		return toRefundDTO(rf, h.links)
	}))
}
