package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const declinedCardNumber = "4000000000000002"

type state struct {
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
}

type event struct {
	State   state  `json:"state"`
	Updated string `json:"updated"`
}

type relLink struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

type refundSummary struct {
	Status          string `json:"status"`
	AmountAvailable int64  `json:"amount_available"`
	AmountSubmitted int64  `json:"amount_submitted"`
}

type charge struct {
	AccountID     string         `json:"-"`
	Token         string         `json:"-"`
	ChargeID      string         `json:"charge_id"`
	Amount        int64          `json:"amount"`
	Description   string         `json:"description"`
	Reference     string         `json:"reference"`
	Language      string         `json:"language"`
	Email         string         `json:"email,omitempty"`
	ReturnURL     string         `json:"return_url,omitempty"`
	State         state          `json:"state"`
	Provider      string         `json:"payment_provider"`
	CreatedDate   string         `json:"created_date"`
	Delayed       bool           `json:"delayed_capture"`
	Moto          bool           `json:"moto"`
	RefundSummary *refundSummary `json:"refund_summary,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	AgreementID   string         `json:"agreement_id,omitempty"`
	Mode          string         `json:"authorisation_mode,omitempty"`
	Links         []relLink      `json:"links"`
	Events        []event        `json:"-"`
}

type refund struct {
	RefundID    string `json:"refund_id"`
	ChargeID    string `json:"charge_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	CreatedDate string `json:"created_date"`
}

type stub struct {
	baseURL string

	mu      sync.Mutex
	charges map[string]*charge
	refunds map[string][]refund
}

func newStub(baseURL string) *stub {
	return &stub{
		baseURL: baseURL,
		charges: map[string]*charge{},
		refunds: map[string][]refund{},
	}
}

func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func newID() string {
	return uuid.NewString()[:26]
}

// transition moves c to status and refreshes the links a client may follow
// next. Callers hold s.mu.
func (s *stub) transition(c *charge, status string) {
	finished := slices.Contains([]string{"success", "failed", "cancelled", "error"}, status)
	c.State = state{Status: status, Finished: finished}
	c.Events = append(c.Events, event{State: c.State, Updated: now()})

	c.Links = []relLink{{Rel: "self", Href: s.baseURL + "/v1/api/charges/" + c.ChargeID, Method: http.MethodGet}}
	switch status {
	case "created":
		c.Links = append(c.Links,
			relLink{Rel: "next_url", Href: s.baseURL + "/secure/" + c.Token, Method: http.MethodGet},
			relLink{Rel: "cancel", Href: s.baseURL + "/cancel", Method: http.MethodPost},
		)
	case "capturable":
		c.Links = append(c.Links,
			relLink{Rel: "cancel", Href: s.baseURL + "/cancel", Method: http.MethodPost},
			relLink{Rel: "capture", Href: s.baseURL + "/capture", Method: http.MethodPost},
		)
	case "success":
		c.RefundSummary = &refundSummary{Status: "available", AmountAvailable: c.Amount}
	}
}

// lookup returns the account's charge, writing a 404 when there is none.
func (s *stub) lookup(w http.ResponseWriter, accountID, chargeID string) *charge {
	c, ok := s.charges[chargeID]
	if !ok || (accountID != "" && c.AccountID != accountID) {
		writeError(w, http.StatusNotFound, "CHARGE_NOT_FOUND", "Charge with id ["+chargeID+"] not found.")
		return nil
	}
	return c
}

func (s *stub) connectorRoutes(r chi.Router) {
	r.Route("/v1/api/accounts/{accountId}", func(r chi.Router) {
		r.Post("/charges", s.createCharge)
		r.Get("/charges", s.searchCharges)
		r.Get("/charges/{chargeId}", s.getCharge)
		r.Get("/charges/{chargeId}/events", s.getChargeEvents)
		r.Post("/charges/{chargeId}/cancel", s.cancelCharge)
		r.Post("/charges/{chargeId}/capture", s.captureCharge)
		r.Get("/charges/{chargeId}/refunds", s.getRefunds)
		r.Post("/charges/{chargeId}/refunds", s.createRefund)
		r.Post("/agreements", s.createAgreement)
		r.Post("/mandates", s.createMandate)
	})
	r.Post("/v1/api/charges/authorise", s.authorise)
	r.Get("/v1/refunds/account/{accountId}", s.searchRefunds)
}

func (s *stub) createCharge(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount            int64          `json:"amount"`
		Description       string         `json:"description"`
		Reference         string         `json:"reference"`
		ReturnURL         string         `json:"return_url"`
		Language          string         `json:"language"`
		Email             string         `json:"email"`
		DelayedCapture    bool           `json:"delayed_capture"`
		Moto              bool           `json:"moto"`
		Metadata          map[string]any `json:"metadata"`
		AgreementID       string         `json:"agreement_id"`
		AuthorisationMode string         `json:"authorisation_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "GENERIC", "invalid charge request")
		return
	}

	c := &charge{
		AccountID:   chi.URLParam(r, "accountId"),
		Token:       uuid.NewString(),
		ChargeID:    newID(),
		Amount:      body.Amount,
		Description: body.Description,
		Reference:   body.Reference,
		Language:    body.Language,
		Email:       body.Email,
		ReturnURL:   body.ReturnURL,
		Provider:    "sandbox",
		CreatedDate: now(),
		Delayed:     body.DelayedCapture,
		Moto:        body.Moto,
		Metadata:    body.Metadata,
		AgreementID: body.AgreementID,
		Mode:        body.AuthorisationMode,
	}

	s.mu.Lock()
	s.transition(c, "created")
	s.charges[c.ChargeID] = c
	s.mu.Unlock()

	slog.Info("charge created", "charge_id", c.ChargeID, "account_id", c.AccountID,
		"idempotency_key", r.Header.Get("Idempotency-Key"))
	writeJSON(w, http.StatusCreated, c)
}

func (s *stub) getCharge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.lookup(w, chi.URLParam(r, "accountId"), chi.URLParam(r, "chargeId")); c != nil {
		writeJSON(w, http.StatusOK, c)
	}
}

func (s *stub) getChargeEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.lookup(w, chi.URLParam(r, "accountId"), chi.URLParam(r, "chargeId"))
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"charge_id": c.ChargeID, "events": c.Events})
}

func (s *stub) cancelCharge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.lookup(w, chi.URLParam(r, "accountId"), chi.URLParam(r, "chargeId"))
	if c == nil {
		return
	}
	if c.State.Finished {
		writeError(w, http.StatusBadRequest, "GENERIC", "Charge is in a state that cannot be cancelled")
		return
	}
	s.transition(c, "cancelled")
	w.WriteHeader(http.StatusNoContent)
}

func (s *stub) captureCharge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.lookup(w, chi.URLParam(r, "accountId"), chi.URLParam(r, "chargeId"))
	if c == nil {
		return
	}
	if c.State.Status != "capturable" {
		writeError(w, http.StatusConflict, "GENERIC", "Charge is not awaiting capture")
		return
	}
	s.transition(c, "success")
	w.WriteHeader(http.StatusNoContent)
}

func (s *stub) authorise(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OneTimeToken string `json:"one_time_token"`
		CardNumber   string `json:"card_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "GENERIC", "invalid authorisation request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var c *charge
	for _, ch := range s.charges {
		if ch.Token == body.OneTimeToken {
			c = ch
			break
		}
	}
	if c == nil || c.State.Status != "created" {
		writeError(w, http.StatusBadRequest, "ONE_TIME_TOKEN_INVALID", "The one_time_token is not valid")
		return
	}
	if body.CardNumber == declinedCardNumber {
		s.transition(c, "failed")
		writeError(w, http.StatusBadRequest, "AUTHORISATION_REJECTED", "The payment was rejected")
		return
	}

	if c.Delayed {
		s.transition(c, "capturable")
	} else {
		s.transition(c, "success")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *stub) getRefunds(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.lookup(w, chi.URLParam(r, "accountId"), chi.URLParam(r, "chargeId"))
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payment_id": c.ChargeID,
		"_embedded":  map[string]any{"refunds": s.refunds[c.ChargeID]},
	})
}

func (s *stub) createRefund(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount                int64 `json:"amount"`
		RefundAmountAvailable int64 `json:"refund_amount_available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "GENERIC", "invalid refund request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.lookup(w, chi.URLParam(r, "accountId"), chi.URLParam(r, "chargeId"))
	if c == nil {
		return
	}
	rs := c.RefundSummary
	if rs == nil || body.Amount > rs.AmountAvailable {
		writeError(w, http.StatusBadRequest, "REFUND_NOT_AVAILABLE", "The charge is not available for refund")
		return
	}
	if body.RefundAmountAvailable != rs.AmountAvailable {
		writeError(w, http.StatusPreconditionFailed, "REFUND_AMOUNT_AVAILABLE_MISMATCH", "Refund amount available mismatch")
		return
	}

	rf := refund{RefundID: newID(), ChargeID: c.ChargeID, Amount: body.Amount, Status: "submitted", CreatedDate: now()}
	s.refunds[c.ChargeID] = append(s.refunds[c.ChargeID], rf)
	rs.AmountAvailable -= body.Amount
	rs.AmountSubmitted += body.Amount
	if rs.AmountAvailable == 0 {
		rs.Status = "full"
	}
	writeJSON(w, http.StatusAccepted, rf)
}

func (s *stub) createAgreement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reference      string `json:"reference"`
		Description    string `json:"description"`
		UserIdentifier string `json:"user_identifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "GENERIC", "invalid agreement request")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"agreement_id":    newID(),
		"reference":       body.Reference,
		"description":     body.Description,
		"user_identifier": body.UserIdentifier,
		"status":          "created",
		"created_date":    now(),
	})
}

func (s *stub) createMandate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReturnURL   string `json:"return_url"`
		Reference   string `json:"reference"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "GENERIC", "invalid mandate request")
		return
	}
	id := newID()
	writeJSON(w, http.StatusCreated, map[string]any{
		"mandate_id":       id,
		"reference":        body.Reference,
		"description":      body.Description,
		"return_url":       body.ReturnURL,
		"state":            state{Status: "created"},
		"payment_provider": "sandbox",
		"created_date":     now(),
		"links": []relLink{
			{Rel: "next_url", Href: s.baseURL + "/mandate/" + id, Method: http.MethodGet},
		},
	})
}

// page slices items per the page and display_size query parameters and
// builds navigation links under path.
func page[T any](r *http.Request, baseURL, path string, items []T) map[string]any {
	q := r.URL.Query()
	p, _ := strconv.Atoi(q.Get("page"))
	if p < 1 {
		p = 1
	}
	size, _ := strconv.Atoi(q.Get("display_size"))
	if size < 1 {
		size = 500
	}

	start := min((p-1)*size, len(items))
	end := min(start+size, len(items))

	link := func(n int) map[string]string {
		lq := r.URL.Query()
		lq.Set("page", strconv.Itoa(n))
		lq.Set("display_size", strconv.Itoa(size))
		return map[string]string{"href": baseURL + path + "?" + lq.Encode(), "method": http.MethodGet}
	}
	last := max(1, (len(items)+size-1)/size)
	links := map[string]any{"self": link(p), "first_page": link(1), "last_page": link(last)}
	if p > 1 {
		links["prev_page"] = link(p - 1)
	}
	if p < last {
		links["next_page"] = link(p + 1)
	}

	return map[string]any{
		"total":   len(items),
		"count":   end - start,
		"page":    p,
		"results": items[start:end],
		"_links":  links,
	}
}

// accountCharges returns the account's charges oldest first. Callers hold
// s.mu.
func (s *stub) accountCharges(accountID string) []*charge {
	var out []*charge
	for _, c := range s.charges {
		if c.AccountID == accountID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *charge) int {
		if a.CreatedDate == b.CreatedDate {
			return 0
		}
		if a.CreatedDate < b.CreatedDate {
			return -1
		}
		return 1
	})
	return out
}

func (s *stub) searchCharges(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	reference, status := r.URL.Query().Get("reference"), r.URL.Query().Get("state")

	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*charge
	for _, c := range s.accountCharges(accountID) {
		if (reference == "" || c.Reference == reference) && (status == "" || c.State.Status == status) {
			matched = append(matched, c)
		}
	}
	writeJSON(w, http.StatusOK, page(r, s.baseURL, r.URL.Path, matched))
}

func (s *stub) searchRefunds(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []refund
	for _, c := range s.accountCharges(chi.URLParam(r, "accountId")) {
		out = append(out, s.refunds[c.ChargeID]...)
	}
	writeJSON(w, http.StatusOK, page(r, s.baseURL, r.URL.Path, out))
}
