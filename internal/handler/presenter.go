package handler

import (
	"net/http"
	"net/url"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/links"
)

type stateDTO struct {
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func toStateDTO(s domain.PaymentState) stateDTO {
	return stateDTO{Status: s.Status, Finished: s.Finished, Code: s.Code, Message: s.Message}
}

type addressDTO struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}

type cardDetailsDTO struct {
	LastDigits     string      `json:"last_digits_card_number,omitempty"`
	FirstDigits    string      `json:"first_digits_card_number,omitempty"`
	CardholderName string      `json:"cardholder_name,omitempty"`
	ExpiryDate     string      `json:"expiry_date,omitempty"`
	CardBrand      string      `json:"card_brand,omitempty"`
	CardType       string      `json:"card_type,omitempty"`
	BillingAddress *addressDTO `json:"billing_address,omitempty"`
}

type refundSummaryDTO struct {
	Status          string `json:"status"`
	AmountAvailable int64  `json:"amount_available"`
	AmountSubmitted int64  `json:"amount_submitted"`
}

type settlementDTO struct {
	CaptureSubmitTime string `json:"capture_submit_time,omitempty"`
	CapturedDate      string `json:"captured_date,omitempty"`
	SettledDate       string `json:"settled_date,omitempty"`
}

func toSettlementDTO(s *domain.SettlementSummary) *settlementDTO {
	if s == nil {
		return nil
	}
	return &settlementDTO{CaptureSubmitTime: s.CaptureSubmitTime, CapturedDate: s.CapturedDate, SettledDate: s.SettledDate}
}

type paymentLinksDTO struct {
	Self    *domain.Link `json:"self"`
	NextURL *domain.Link `json:"next_url,omitempty"`
	Events  *domain.Link `json:"events"`
	Refunds *domain.Link `json:"refunds"`
	Cancel  *domain.Link `json:"cancel,omitempty"`
	Capture *domain.Link `json:"capture,omitempty"`
}

type paymentDTO struct {
	PaymentID         string            `json:"payment_id"`
	Amount            int64             `json:"amount"`
	Description       string            `json:"description"`
	Reference         string            `json:"reference,omitempty"`
	Language          string            `json:"language,omitempty"`
	Email             string            `json:"email,omitempty"`
	ReturnURL         string            `json:"return_url,omitempty"`
	State             stateDTO          `json:"state"`
	PaymentProvider   string            `json:"payment_provider,omitempty"`
	CreatedDate       string            `json:"created_date"`
	DelayedCapture    bool              `json:"delayed_capture"`
	Moto              bool              `json:"moto"`
	Fee               *int64            `json:"fee,omitempty"`
	NetAmount         *int64            `json:"net_amount,omitempty"`
	TotalAmount       *int64            `json:"total_amount,omitempty"`
	RefundSummary     *refundSummaryDTO `json:"refund_summary,omitempty"`
	SettlementSummary *settlementDTO    `json:"settlement_summary,omitempty"`
	CardDetails       *cardDetailsDTO   `json:"card_details,omitempty"`
	Metadata          map[string]any    `json:"metadata,omitempty"`
	AgreementID       string            `json:"agreement_id,omitempty"`
	AuthorisationMode string            `json:"authorisation_mode,omitempty"`
	Links             paymentLinksDTO   `json:"_links"`
}

func paymentPath(id string) string {
	return "/v1/payments/" + url.PathEscape(id)
}

func toPaymentDTO(p domain.Payment, rw *links.Rewriter) paymentDTO {
	self := paymentPath(p.ID)
	dto := paymentDTO{
		PaymentID:         p.ID,
		Amount:            p.Amount,
		Description:       p.Description,
		Reference:         p.Reference,
		Language:          p.Language,
		Email:             p.Email,
		ReturnURL:         p.ReturnURL,
		State:             toStateDTO(p.State),
		PaymentProvider:   p.PaymentProvider,
		CreatedDate:       p.CreatedDate,
		DelayedCapture:    p.DelayedCapture,
		Moto:              p.Moto,
		Fee:               p.Fee,
		NetAmount:         p.NetAmount,
		TotalAmount:       p.TotalAmount,
		SettlementSummary: toSettlementDTO(p.SettlementSummary),
		Metadata:          p.Metadata,
		AgreementID:       p.AgreementID,
		AuthorisationMode: p.AuthorisationMode,
		Links: paymentLinksDTO{
			Self:    rw.Link(http.MethodGet, self),
			NextURL: p.NextURL,
			Events:  rw.Link(http.MethodGet, self+"/events"),
			Refunds: rw.Link(http.MethodGet, self+"/refunds"),
		},
	}
	if p.Cancellable {
		dto.Links.Cancel = rw.Link(http.MethodPost, self+"/cancel")
	}
	if p.Capturable {
		dto.Links.Capture = rw.Link(http.MethodPost, self+"/capture")
	}
	if rs := p.RefundSummary; rs != nil {
		dto.RefundSummary = &refundSummaryDTO{Status: rs.Status, AmountAvailable: rs.AmountAvailable, AmountSubmitted: rs.AmountSubmitted}
	}
	if c := p.CardDetails; c != nil {
		dto.CardDetails = &cardDetailsDTO{
			LastDigits:     c.LastDigits,
			FirstDigits:    c.FirstDigits,
			CardholderName: c.CardholderName,
			ExpiryDate:     c.ExpiryDate,
			CardBrand:      c.CardBrand,
			CardType:       c.CardType,
		}
		if a := c.BillingAddress; a != nil {
			dto.CardDetails.BillingAddress = &addressDTO{Line1: a.Line1, Line2: a.Line2, Postcode: a.Postcode, City: a.City, Country: a.Country}
		}
	}
	return dto
}

type eventDTO struct {
	PaymentID string       `json:"payment_id"`
	State     stateDTO     `json:"state"`
	Updated   string       `json:"updated"`
	Links     eventLinkDTO `json:"_links"`
}

type eventLinkDTO struct {
	PaymentURL *domain.Link `json:"payment_url"`
}

type eventsDTO struct {
	PaymentID string     `json:"payment_id"`
	Events    []eventDTO `json:"events"`
	Links     struct {
		Self *domain.Link `json:"self"`
	} `json:"_links"`
}

func toEventsDTO(e domain.PaymentEvents, paymentID string, rw *links.Rewriter) eventsDTO {
	paymentLink := rw.Link(http.MethodGet, paymentPath(paymentID))
	dto := eventsDTO{PaymentID: paymentID, Events: make([]eventDTO, len(e.Events))}
	for i, ev := range e.Events {
		dto.Events[i] = eventDTO{
			PaymentID: paymentID,
			State:     toStateDTO(ev.State),
			Updated:   ev.Updated,
			Links:     eventLinkDTO{PaymentURL: paymentLink},
		}
	}
	dto.Links.Self = rw.Link(http.MethodGet, paymentPath(paymentID)+"/events")
	return dto
}

type refundLinksDTO struct {
	Self    *domain.Link `json:"self"`
	Payment *domain.Link `json:"payment"`
}

type refundDTO struct {
	RefundID          string         `json:"refund_id"`
	PaymentID         string         `json:"payment_id,omitempty"`
	Amount            int64          `json:"amount"`
	Status            string         `json:"status"`
	CreatedDate       string         `json:"created_date"`
	SettlementSummary *settlementDTO `json:"settlement_summary,omitempty"`
	Links             refundLinksDTO `json:"_links"`
}

func toRefundDTO(r domain.Refund, rw *links.Rewriter) refundDTO {
	payment := paymentPath(r.PaymentID)
	return refundDTO{
		RefundID:          r.ID,
		PaymentID:         r.PaymentID,
		Amount:            r.Amount,
		Status:            r.Status,
		CreatedDate:       r.CreatedDate,
		SettlementSummary: toSettlementDTO(r.SettlementSummary),
		Links: refundLinksDTO{
			Self:    rw.Link(http.MethodGet, payment+"/refunds/"+url.PathEscape(r.ID)),
			Payment: rw.Link(http.MethodGet, payment),
		},
	}
}

type refundsDTO struct {
	PaymentID string `json:"payment_id"`
	Embedded  struct {
		Refunds []refundDTO `json:"refunds"`
	} `json:"_embedded"`
	Links refundLinksDTO `json:"_links"`
}

func toRefundsDTO(rs domain.Refunds, paymentID string, rw *links.Rewriter) refundsDTO {
	dto := refundsDTO{PaymentID: paymentID}
	dto.Embedded.Refunds = make([]refundDTO, len(rs.Refunds))
	for i, r := range rs.Refunds {
		dto.Embedded.Refunds[i] = toRefundDTO(r, rw)
	}
	dto.Links = refundLinksDTO{
		Self:    rw.Link(http.MethodGet, paymentPath(paymentID)+"/refunds"),
		Payment: rw.Link(http.MethodGet, paymentPath(paymentID)),
	}
	return dto
}

type searchDTO[T any] struct {
	Total   int                    `json:"total"`
	Count   int                    `json:"count"`
	Page    int                    `json:"page"`
	Results []T                    `json:"results"`
	Links   domain.NavigationLinks `json:"_links"`
}

func toSearchDTO[T, U any](page domain.SearchPage[T], f func(T) U) searchDTO[U] {
	results := make([]U, len(page.Results))
	for i, r := range page.Results {
		results[i] = f(r)
	}
	return searchDTO[U]{
		Total:   page.Total,
		Count:   page.Count,
		Page:    page.Page,
		Results: results,
		Links:   page.Links,
	}
}

type agreementDTO struct {
	AgreementID    string `json:"agreement_id"`
	Reference      string `json:"reference"`
	Description    string `json:"description"`
	UserIdentifier string `json:"user_identifier,omitempty"`
	Status         string `json:"status"`
	CreatedDate    string `json:"created_date"`
}

func toAgreementDTO(a domain.Agreement) agreementDTO {
	return agreementDTO{
		AgreementID:    a.ID,
		Reference:      a.Reference,
		Description:    a.Description,
		UserIdentifier: a.UserIdentifier,
		Status:         a.Status,
		CreatedDate:    a.CreatedDate,
	}
}

type mandateDTO struct {
	MandateID       string `json:"mandate_id"`
	Reference       string `json:"reference"`
	Description     string `json:"description,omitempty"`
	ReturnURL       string `json:"return_url"`
	State           string `json:"state"`
	PaymentProvider string `json:"payment_provider"`
	CreatedDate     string `json:"created_date"`
	Links           struct {
		Self    *domain.Link `json:"self"`
		NextURL *domain.Link `json:"next_url,omitempty"`
	} `json:"_links"`
}

func toMandateDTO(m domain.Mandate, rw *links.Rewriter) mandateDTO {
	dto := mandateDTO{
		MandateID:       m.ID,
		Reference:       m.Reference,
		Description:     m.Description,
		ReturnURL:       m.ReturnURL,
		State:           m.State,
		PaymentProvider: m.PaymentProvider,
		CreatedDate:     m.CreatedDate,
	}
	dto.Links.Self = rw.Link(http.MethodGet, "/v1/directdebit/mandates/"+url.PathEscape(m.ID))
	dto.Links.NextURL = m.NextURL
	return dto
}
