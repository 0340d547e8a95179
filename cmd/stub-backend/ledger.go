package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// transaction is the ledger's view of a charge or refund.
type transaction struct {
	TransactionID       string         `json:"transaction_id"`
	ParentTransactionID string         `json:"parent_transaction_id,omitempty"`
	TransactionType     string         `json:"transaction_type"`
	Amount              int64          `json:"amount"`
	Description         string         `json:"description,omitempty"`
	Reference           string         `json:"reference,omitempty"`
	Language            string         `json:"language,omitempty"`
	Email               string         `json:"email,omitempty"`
	ReturnURL           string         `json:"return_url,omitempty"`
	State               state          `json:"state"`
	PaymentProvider     string         `json:"payment_provider,omitempty"`
	CreatedDate         string         `json:"created_date"`
	DelayedCapture      bool           `json:"delayed_capture,omitempty"`
	Moto                bool           `json:"moto,omitempty"`
	RefundSummary       *refundSummary `json:"refund_summary,omitempty"`
	ExternalMetadata    map[string]any `json:"external_metadata,omitempty"`
	AgreementID         string         `json:"agreement_id,omitempty"`
}

func paymentTransaction(c *charge) transaction {
	return transaction{
		TransactionID:    c.ChargeID,
		TransactionType:  "PAYMENT",
		Amount:           c.Amount,
		Description:      c.Description,
		Reference:        c.Reference,
		Language:         c.Language,
		Email:            c.Email,
		ReturnURL:        c.ReturnURL,
		State:            c.State,
		PaymentProvider:  c.Provider,
		CreatedDate:      c.CreatedDate,
		DelayedCapture:   c.Delayed,
		Moto:             c.Moto,
		RefundSummary:    c.RefundSummary,
		ExternalMetadata: c.Metadata,
		AgreementID:      c.AgreementID,
	}
}

func refundTransaction(r refund) transaction {
	return transaction{
		TransactionID:       r.RefundID,
		ParentTransactionID: r.ChargeID,
		TransactionType:     "REFUND",
		Amount:              r.Amount,
		State:               state{Status: r.Status},
		CreatedDate:         r.CreatedDate,
	}
}

func (s *stub) ledgerRoutes(r chi.Router) {
	r.Get("/v1/transaction", s.searchTransactions)
	r.Get("/v1/transaction/{id}", s.getTransaction)
	r.Get("/v1/transaction/{id}/event", s.getTransactionEvents)
	r.Get("/v1/transaction/{id}/transaction", s.getChildTransactions)
}

func (s *stub) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	accountID := r.URL.Query().Get("account_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Query().Get("transaction_type") == "REFUND" {
		parent := r.URL.Query().Get("parent_external_id")
		for _, rf := range s.refunds[parent] {
			if rf.RefundID == id {
				writeJSON(w, http.StatusOK, refundTransaction(rf))
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Transaction with id [" + id + "] not found"})
		return
	}

	c, ok := s.charges[id]
	if !ok || c.AccountID != accountID {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Transaction with id [" + id + "] not found"})
		return
	}
	writeJSON(w, http.StatusOK, paymentTransaction(c))
}

func (s *stub) getTransactionEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges[id]
	if !ok || c.AccountID != r.URL.Query().Get("gateway_account_id") {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Transaction with id [" + id + "] not found"})
		return
	}

	type ledgerEvent struct {
		State     state  `json:"state"`
		Timestamp string `json:"timestamp"`
	}
	events := make([]ledgerEvent, len(c.Events))
	for i, e := range c.Events {
		events[i] = ledgerEvent{State: e.State, Timestamp: e.Updated}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction_id": c.ChargeID, "events": events})
}

func (s *stub) getChildTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges[id]
	if !ok || c.AccountID != r.URL.Query().Get("gateway_account_id") {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Transaction with id [" + id + "] not found"})
		return
	}

	out := make([]transaction, 0, len(s.refunds[id]))
	for _, rf := range s.refunds[id] {
		out = append(out, refundTransaction(rf))
	}
	writeJSON(w, http.StatusOK, map[string]any{"parent_transaction_id": id, "transactions": out})
}

func (s *stub) searchTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accountID, reference := q.Get("account_id"), q.Get("reference")

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []transaction
	for _, c := range s.accountCharges(accountID) {
		if q.Get("transaction_type") == "REFUND" {
			for _, rf := range s.refunds[c.ChargeID] {
				out = append(out, refundTransaction(rf))
			}
			continue
		}
		if reference == "" || c.Reference == reference {
			out = append(out, paymentTransaction(c))
		}
	}
	writeJSON(w, http.StatusOK, page(r, s.baseURL, r.URL.Path, out))
}
