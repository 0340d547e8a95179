package backend

import (
	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

type stateJSON struct {
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (s stateJSON) toDomain() domain.PaymentState {
	return domain.PaymentState{Status: s.Status, Finished: s.Finished, Code: s.Code, Message: s.Message}
}

type addressJSON struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type cardDetailsJSON struct {
	LastDigits     string       `json:"last_digits_card_number"`
	FirstDigits    string       `json:"first_digits_card_number"`
	CardholderName string       `json:"cardholder_name"`
	ExpiryDate     string       `json:"expiry_date"`
	CardBrand      string       `json:"card_brand"`
	CardType       string       `json:"card_type"`
	BillingAddress *addressJSON `json:"billing_address"`
}

func (c *cardDetailsJSON) toDomain() *domain.CardDetails {
	if c == nil {
		return nil
	}
	d := &domain.CardDetails{
		LastDigits:     c.LastDigits,
		FirstDigits:    c.FirstDigits,
		CardholderName: c.CardholderName,
		ExpiryDate:     c.ExpiryDate,
		CardBrand:      c.CardBrand,
		CardType:       c.CardType,
	}
	if a := c.BillingAddress; a != nil {
		d.BillingAddress = &domain.Address{
			Line1: a.Line1, Line2: a.Line2, Postcode: a.Postcode, City: a.City, Country: a.Country,
		}
	}
	return d
}

type refundSummaryJSON struct {
	Status          string `json:"status"`
	AmountAvailable int64  `json:"amount_available"`
	AmountSubmitted int64  `json:"amount_submitted"`
}

func (r *refundSummaryJSON) toDomain() *domain.RefundSummary {
	if r == nil {
		return nil
	}
	return &domain.RefundSummary{Status: r.Status, AmountAvailable: r.AmountAvailable, AmountSubmitted: r.AmountSubmitted}
}

type settlementJSON struct {
	CaptureSubmitTime string `json:"capture_submit_time"`
	CapturedDate      string `json:"captured_date"`
	SettledDate       string `json:"settled_date"`
}

func (s *settlementJSON) toDomain() *domain.SettlementSummary {
	if s == nil {
		return nil
	}
	return &domain.SettlementSummary{CaptureSubmitTime: s.CaptureSubmitTime, CapturedDate: s.CapturedDate, SettledDate: s.SettledDate}
}

type linkJSON struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

func (l *linkJSON) toDomain() *domain.Link {
	if l == nil {
		return nil
	}
	return &domain.Link{Href: l.Href, Method: l.Method}
}

type navigationJSON struct {
	Self  *linkJSON `json:"self"`
	First *linkJSON `json:"first_page"`
	Prev  *linkJSON `json:"prev_page"`
	Next  *linkJSON `json:"next_page"`
	Last  *linkJSON `json:"last_page"`
}

func (n navigationJSON) toDomain() domain.NavigationLinks {
	return domain.NavigationLinks{
		Self:  n.Self.toDomain(),
		First: n.First.toDomain(),
		Prev:  n.Prev.toDomain(),
		Next:  n.Next.toDomain(),
		Last:  n.Last.toDomain(),
	}
}

// relLinkJSON is the connector's list-style link.
type relLinkJSON struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

type chargeJSON struct {
	ChargeID          string             `json:"charge_id"`
	Amount            int64              `json:"amount"`
	Description       string             `json:"description"`
	Reference         string             `json:"reference"`
	Language          string             `json:"language"`
	Email             string             `json:"email,omitempty"`
	ReturnURL         string             `json:"return_url,omitempty"`
	State             stateJSON          `json:"state"`
	PaymentProvider   string             `json:"payment_provider"`
	CreatedDate       string             `json:"created_date"`
	DelayedCapture    bool               `json:"delayed_capture"`
	Moto              bool               `json:"moto"`
	Fee               *int64             `json:"fee,omitempty"`
	NetAmount         *int64             `json:"net_amount,omitempty"`
	TotalAmount       *int64             `json:"total_amount,omitempty"`
	RefundSummary     *refundSummaryJSON `json:"refund_summary,omitempty"`
	SettlementSummary *settlementJSON    `json:"settlement_summary,omitempty"`
	CardDetails       *cardDetailsJSON   `json:"card_details,omitempty"`
	Metadata          map[string]any     `json:"metadata,omitempty"`
	AgreementID       string             `json:"agreement_id,omitempty"`
	AuthorisationMode string             `json:"authorisation_mode,omitempty"`
	Links             []relLinkJSON      `json:"links,omitempty"`
}

func (c chargeJSON) toDomain() domain.Payment {
	p := domain.Payment{
		ID:                c.ChargeID,
		Amount:            c.Amount,
		Description:       c.Description,
		Reference:         c.Reference,
		Language:          c.Language,
		Email:             c.Email,
		ReturnURL:         c.ReturnURL,
		State:             c.State.toDomain(),
		PaymentProvider:   c.PaymentProvider,
		CreatedDate:       c.CreatedDate,
		DelayedCapture:    c.DelayedCapture,
		Moto:              c.Moto,
		Fee:               c.Fee,
		NetAmount:         c.NetAmount,
		TotalAmount:       c.TotalAmount,
		RefundSummary:     c.RefundSummary.toDomain(),
		SettlementSummary: c.SettlementSummary.toDomain(),
		CardDetails:       c.CardDetails.toDomain(),
		Metadata:          c.Metadata,
		AgreementID:       c.AgreementID,
		AuthorisationMode: c.AuthorisationMode,
	}
	for _, l := range c.Links {
		switch l.Rel {
		case "next_url":
			p.NextURL = &domain.Link{Href: l.Href, Method: l.Method}
		case "cancel":
			p.Cancellable = true
		case "capture":
			p.Capturable = true
		}
	}
	return p
}

// transactionJSON is a ledger transaction of type PAYMENT or REFUND.
type transactionJSON struct {
	TransactionID       string             `json:"transaction_id"`
	ParentTransactionID string             `json:"parent_transaction_id,omitempty"`
	TransactionType     string             `json:"transaction_type,omitempty"`
	Amount              int64              `json:"amount"`
	Description         string             `json:"description,omitempty"`
	Reference           string             `json:"reference,omitempty"`
	Language            string             `json:"language,omitempty"`
	Email               string             `json:"email,omitempty"`
	ReturnURL           string             `json:"return_url,omitempty"`
	State               stateJSON          `json:"state"`
	PaymentProvider     string             `json:"payment_provider,omitempty"`
	CreatedDate         string             `json:"created_date"`
	DelayedCapture      bool               `json:"delayed_capture,omitempty"`
	Moto                bool               `json:"moto,omitempty"`
	Fee                 *int64             `json:"fee,omitempty"`
	NetAmount           *int64             `json:"net_amount,omitempty"`
	TotalAmount         *int64             `json:"total_amount,omitempty"`
	RefundSummary       *refundSummaryJSON `json:"refund_summary,omitempty"`
	SettlementSummary   *settlementJSON    `json:"settlement_summary,omitempty"`
	CardDetails         *cardDetailsJSON   `json:"card_details,omitempty"`
	ExternalMetadata    map[string]any     `json:"external_metadata,omitempty"`
	AgreementID         string             `json:"agreement_id,omitempty"`
	AuthorisationMode   string             `json:"authorisation_mode,omitempty"`
}

// toPayment maps a ledger transaction. The ledger does not know whether a
// payment can still be cancelled or captured, so neither is offered.
func (t transactionJSON) toPayment() domain.Payment {
	return domain.Payment{
		ID:                t.TransactionID,
		Amount:            t.Amount,
		Description:       t.Description,
		Reference:         t.Reference,
		Language:          t.Language,
		Email:             t.Email,
		ReturnURL:         t.ReturnURL,
		State:             t.State.toDomain(),
		PaymentProvider:   t.PaymentProvider,
		CreatedDate:       t.CreatedDate,
		DelayedCapture:    t.DelayedCapture,
		Moto:              t.Moto,
		Fee:               t.Fee,
		NetAmount:         t.NetAmount,
		TotalAmount:       t.TotalAmount,
		RefundSummary:     t.RefundSummary.toDomain(),
		SettlementSummary: t.SettlementSummary.toDomain(),
		CardDetails:       t.CardDetails.toDomain(),
		Metadata:          t.ExternalMetadata,
		AgreementID:       t.AgreementID,
		AuthorisationMode: t.AuthorisationMode,
	}
}

func (t transactionJSON) toRefund() domain.Refund {
	return domain.Refund{
		ID:                t.TransactionID,
		PaymentID:         t.ParentTransactionID,
		Amount:            t.Amount,
		Status:            t.State.Status,
		CreatedDate:       t.CreatedDate,
		SettlementSummary: t.SettlementSummary.toDomain(),
	}
}

type refundJSON struct {
	RefundID          string          `json:"refund_id"`
	ChargeID          string          `json:"charge_id,omitempty"`
	Amount            int64           `json:"amount"`
	Status            string          `json:"status"`
	CreatedDate       string          `json:"created_date"`
	SettlementSummary *settlementJSON `json:"settlement_summary,omitempty"`
}

func (r refundJSON) toDomain(paymentID string) domain.Refund {
	if r.ChargeID != "" {
		paymentID = r.ChargeID
	}
	return domain.Refund{
		ID:                r.RefundID,
		PaymentID:         paymentID,
		Amount:            r.Amount,
		Status:            r.Status,
		CreatedDate:       r.CreatedDate,
		SettlementSummary: r.SettlementSummary.toDomain(),
	}
}

type searchJSON[T any] struct {
	Total   int            `json:"total"`
	Count   int            `json:"count"`
	Page    int            `json:"page"`
	Results []T            `json:"results"`
	Links   navigationJSON `json:"_links"`
}

func mapPage[T, U any](s searchJSON[T], f func(T) U) domain.SearchPage[U] {
	out := make([]U, len(s.Results))
	for i, r := range s.Results {
		out[i] = f(r)
	}
	return domain.SearchPage[U]{
		Total:   s.Total,
		Count:   s.Count,
		Page:    s.Page,
		Results: out,
		Links:   s.Links.toDomain(),
	}
}
