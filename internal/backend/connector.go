package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
)

// sourceCardAPI marks charges created directly through this API, as
// opposed to a payment link or an agent-initiated MOTO payment.
const sourceCardAPI = "CARD_API"

type ConnectorClient struct {
	client
}

func NewConnectorClient(baseURL string, timeout time.Duration) *ConnectorClient {
	return &ConnectorClient{client: newClient(NameConnector, baseURL, timeout)}
}

func chargesPath(accountID string) string {
	return "/v1/api/accounts/" + url.PathEscape(accountID) + "/charges"
}

func chargePath(accountID, paymentID string) string {
	return chargesPath(accountID) + "/" + url.PathEscape(paymentID)
}

func (c *ConnectorClient) GetCharge(ctx context.Context, accountID, paymentID string) (domain.Payment, error) {
	var out chargeJSON
	err := c.do(ctx, call{
		op:     "GetCharge",
		method: http.MethodGet,
		path:   chargePath(accountID, paymentID),
		out:    &out,
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return out.toDomain(), nil
}

type chargeEventsJSON struct {
	ChargeID string `json:"charge_id"`
	Events   []struct {
		State   stateJSON `json:"state"`
		Updated string    `json:"updated"`
	} `json:"events"`
}

func (c *ConnectorClient) GetChargeEvents(ctx context.Context, accountID, paymentID string) (domain.PaymentEvents, error) {
	var out chargeEventsJSON
	err := c.do(ctx, call{
		op:     "GetChargeEvents",
		method: http.MethodGet,
		path:   chargePath(accountID, paymentID) + "/events",
		out:    &out,
	})
	if err != nil {
		return domain.PaymentEvents{}, err
	}

	events := make([]domain.PaymentEvent, len(out.Events))
	for i, e := range out.Events {
		events[i] = domain.PaymentEvent{PaymentID: out.ChargeID, State: e.State.toDomain(), Updated: e.Updated}
	}
	return domain.PaymentEvents{PaymentID: out.ChargeID, Events: events}, nil
}

type chargeRefundsJSON struct {
	PaymentID string `json:"payment_id"`
	Embedded  struct {
		Refunds []refundJSON `json:"refunds"`
	} `json:"_embedded"`
}

func (c *ConnectorClient) GetRefunds(ctx context.Context, accountID, paymentID string) (domain.Refunds, error) {
	var out chargeRefundsJSON
	err := c.do(ctx, call{
		op:     "GetRefunds",
		method: http.MethodGet,
		path:   chargePath(accountID, paymentID) + "/refunds",
		out:    &out,
	})
	if err != nil {
		return domain.Refunds{}, err
	}

	refunds := make([]domain.Refund, len(out.Embedded.Refunds))
	for i, r := range out.Embedded.Refunds {
		refunds[i] = r.toDomain(paymentID)
	}
	return domain.Refunds{PaymentID: paymentID, Refunds: refunds}, nil
}

func (c *ConnectorClient) GetRefund(ctx context.Context, accountID, paymentID, refundID string) (domain.Refund, error) {
	var out refundJSON
	err := c.do(ctx, call{
		op:     "GetRefund",
		method: http.MethodGet,
		path:   chargePath(accountID, paymentID) + "/refunds/" + url.PathEscape(refundID),
		out:    &out,
	})
	if err != nil {
		return domain.Refund{}, err
	}
	return out.toDomain(paymentID), nil
}

func (c *ConnectorClient) SearchCharges(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Payment], error) {
	var out searchJSON[chargeJSON]
	err := c.do(ctx, call{
		op:     "SearchCharges",
		method: http.MethodGet,
		path:   chargesPath(accountID),
		query:  q,
		out:    &out,
	})
	if err != nil {
		return domain.SearchPage[domain.Payment]{}, err
	}
	return mapPage(out, chargeJSON.toDomain), nil
}

func (c *ConnectorClient) SearchRefunds(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Refund], error) {
	var out searchJSON[refundJSON]
	err := c.do(ctx, call{
		op:     "SearchRefunds",
		method: http.MethodGet,
		path:   "/v1/refunds/account/" + url.PathEscape(accountID),
		query:  q,
		out:    &out,
	})
	if err != nil {
		return domain.SearchPage[domain.Refund]{}, err
	}
	return mapPage(out, func(r refundJSON) domain.Refund { return r.toDomain("") }), nil
}

type createChargeJSON struct {
	Amount                           int64                      `json:"amount"`
	Description                      string                     `json:"description"`
	Reference                        *string                    `json:"reference,omitempty"`
	ReturnURL                        *string                    `json:"return_url,omitempty"`
	Language                         string                     `json:"language"`
	Email                            *string                    `json:"email,omitempty"`
	DelayedCapture                   bool                       `json:"delayed_capture"`
	Moto                             bool                       `json:"moto"`
	PrefilledCardholderDetails       *request.CardholderDetails `json:"prefilled_cardholder_details,omitempty"`
	Metadata                         map[string]any             `json:"metadata,omitempty"`
	Source                           string                     `json:"source"`
	AgreementID                      *string                    `json:"agreement_id,omitempty"`
	SavePaymentInstrumentToAgreement bool                       `json:"save_payment_instrument_to_agreement,omitempty"`
	AuthorisationMode                string                     `json:"authorisation_mode,omitempty"`
}

func newCreateChargeJSON(p *request.CreatePayment) createChargeJSON {
	body := createChargeJSON{
		Amount:                     p.Amount,
		Description:                p.Description,
		Reference:                  p.Reference,
		ReturnURL:                  p.ReturnURL,
		Language:                   "en",
		Email:                      p.Email,
		PrefilledCardholderDetails: p.PrefilledCardholderDetails,
		Metadata:                   p.Metadata,
		Source:                     sourceCardAPI,
		AgreementID:                p.AgreementID,
	}
	if p.Language != nil {
		body.Language = *p.Language
	}
	if p.DelayedCapture != nil {
		body.DelayedCapture = *p.DelayedCapture
	}
	if p.Moto != nil {
		body.Moto = *p.Moto
	}
	if p.Internal != nil {
		body.Source = p.Internal.Source
	}
	if p.AuthorisationMode != nil {
		body.AuthorisationMode = *p.AuthorisationMode
	}
	// Setting up an agreement saves the card against it for later
	// recurring payments.
	if p.SetUpAgreement != nil {
		body.AgreementID = p.SetUpAgreement
		body.SavePaymentInstrumentToAgreement = true
	}
	return body
}

// CreateCharge forwards idempotencyKey, when set, so the connector can
// deduplicate retried creates.
func (c *ConnectorClient) CreateCharge(ctx context.Context, accountID string, p *request.CreatePayment, idempotencyKey string) (domain.Payment, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var out chargeJSON
	err := c.do(ctx, call{
		op:      "CreateCharge",
		method:  http.MethodPost,
		path:    chargesPath(accountID),
		body:    newCreateChargeJSON(p),
		headers: headers,
		out:     &out,
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return out.toDomain(), nil
}

func (c *ConnectorClient) CancelCharge(ctx context.Context, accountID, paymentID string) error {
	return c.do(ctx, call{
		op:     "CancelCharge",
		method: http.MethodPost,
		path:   chargePath(accountID, paymentID) + "/cancel",
	})
}

func (c *ConnectorClient) CaptureCharge(ctx context.Context, accountID, paymentID string) error {
	return c.do(ctx, call{
		op:     "CaptureCharge",
		method: http.MethodPost,
		path:   chargePath(accountID, paymentID) + "/capture",
	})
}

// CreateRefund sends the caller's refund_amount_available when given and
// the payment's current one otherwise; the connector rejects the refund with
// 412 if it no longer matches.
func (c *ConnectorClient) CreateRefund(ctx context.Context, accountID, paymentID string, r *request.CreateRefund, amountAvailable int64) (domain.Refund, error) {
	if r.RefundAmountAvailable != nil {
		amountAvailable = *r.RefundAmountAvailable
	}
	body := struct {
		Amount                int64 `json:"amount"`
		RefundAmountAvailable int64 `json:"refund_amount_available"`
	}{r.Amount, amountAvailable}

	var out refundJSON
	err := c.do(ctx, call{
		op:     "CreateRefund",
		method: http.MethodPost,
		path:   chargePath(accountID, paymentID) + "/refunds",
		body:   body,
		out:    &out,
	})
	if err != nil {
		return domain.Refund{}, err
	}
	return out.toDomain(paymentID), nil
}

func (c *ConnectorClient) Authorise(ctx context.Context, a *request.Authorisation) error {
	return c.do(ctx, call{
		op:     "Authorise",
		method: http.MethodPost,
		path:   "/v1/api/charges/authorise",
		body:   a,
	})
}

type agreementJSON struct {
	AgreementID    string `json:"agreement_id"`
	Reference      string `json:"reference"`
	Description    string `json:"description"`
	UserIdentifier string `json:"user_identifier,omitempty"`
	Status         string `json:"status"`
	CreatedDate    string `json:"created_date"`
}

func (c *ConnectorClient) CreateAgreement(ctx context.Context, accountID string, a *request.CreateAgreement) (domain.Agreement, error) {
	var out agreementJSON
	err := c.do(ctx, call{
		op:     "CreateAgreement",
		method: http.MethodPost,
		path:   "/v1/api/accounts/" + url.PathEscape(accountID) + "/agreements",
		body:   a,
		out:    &out,
	})
	if err != nil {
		return domain.Agreement{}, err
	}
	return domain.Agreement{
		ID:             out.AgreementID,
		Reference:      out.Reference,
		Description:    out.Description,
		UserIdentifier: out.UserIdentifier,
		Status:         out.Status,
		CreatedDate:    out.CreatedDate,
	}, nil
}

type mandateJSON struct {
	MandateID       string        `json:"mandate_id"`
	Reference       string        `json:"reference"`
	Description     string        `json:"description,omitempty"`
	ReturnURL       string        `json:"return_url"`
	State           stateJSON     `json:"state"`
	PaymentProvider string        `json:"payment_provider"`
	CreatedDate     string        `json:"created_date"`
	Links           []relLinkJSON `json:"links,omitempty"`
}

func (c *ConnectorClient) CreateMandate(ctx context.Context, accountID string, m *request.CreateMandate) (domain.Mandate, error) {
	var out mandateJSON
	err := c.do(ctx, call{
		op:     "CreateMandate",
		method: http.MethodPost,
		path:   "/v1/api/accounts/" + url.PathEscape(accountID) + "/mandates",
		body:   m,
		out:    &out,
	})
	if err != nil {
		return domain.Mandate{}, err
	}

	mandate := domain.Mandate{
		ID:              out.MandateID,
		Reference:       out.Reference,
		Description:     out.Description,
		ReturnURL:       out.ReturnURL,
		State:           out.State.Status,
		PaymentProvider: out.PaymentProvider,
		CreatedDate:     out.CreatedDate,
	}
	for _, l := range out.Links {
		if l.Rel == "next_url" {
			mandate.NextURL = &domain.Link{Href: l.Href, Method: l.Method}
		}
	}
	return mandate, nil
}
