package service

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/links"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/source"
)

const (
	PaymentsPath = "/v1/payments"
	RefundsPath  = "/v1/refunds"
)

// PaymentService answers the public payment operations. Reads go through a
// source.Strategy; writes always go to the connector.
type PaymentService struct {
	connector connectorClient
	ledger    ledgerClient
	links     *links.Rewriter
}

func NewPaymentService(connector connectorClient, ledger ledgerClient, rewriter *links.Rewriter) *PaymentService {
	return &PaymentService{connector: connector, ledger: ledger, links: rewriter}
}

func (s *PaymentService) GetPayment(ctx context.Context, account domain.Account, mode source.Mode, paymentID string) (domain.Payment, error) {
	strategy := source.Strategy[domain.Payment]{
		Operation: "get_payment",
		LedgerOnly: func(ctx context.Context) (domain.Payment, error) {
			return s.ledger.GetTransaction(ctx, account.ID, paymentID)
		},
		Default: func(ctx context.Context) (domain.Payment, error) {
			return s.connector.GetCharge(ctx, account.ID, paymentID)
		},
	}

	p, err := strategy.Resolve(ctx, mode)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("GetPayment: %w", err)
	}
	return p, nil
}

// GetPaymentEvents is the one read that falls back: a payment the connector
// no longer holds may still be in the ledger.
func (s *PaymentService) GetPaymentEvents(ctx context.Context, account domain.Account, mode source.Mode, paymentID string) (domain.PaymentEvents, error) {
	fromLedger := func(ctx context.Context) (domain.PaymentEvents, error) {
		return s.ledger.GetTransactionEvents(ctx, account.ID, paymentID)
	}
	fromConnector := func(ctx context.Context) (domain.PaymentEvents, error) {
		return s.connector.GetChargeEvents(ctx, account.ID, paymentID)
	}

	strategy := source.Strategy[domain.PaymentEvents]{
		Operation:  "get_payment_events",
		LedgerOnly: fromLedger,
		Default:    source.WithFallback("get_payment_events", fromConnector, fromLedger),
	}

	events, err := strategy.Resolve(ctx, mode)
	if err != nil {
		return domain.PaymentEvents{}, fmt.Errorf("GetPaymentEvents: %w", err)
	}
	return events, nil
}

func (s *PaymentService) SearchPayments(ctx context.Context, account domain.Account, mode source.Mode, params request.PaymentSearch) (domain.SearchPage[domain.Payment], error) {
	q := params.Query()
	strategy := source.Strategy[domain.SearchPage[domain.Payment]]{
		Operation: "search_payments",
		LedgerOnly: func(ctx context.Context) (domain.SearchPage[domain.Payment], error) {
			return s.ledger.SearchPayments(ctx, account.ID, q)
		},
		Default: func(ctx context.Context) (domain.SearchPage[domain.Payment], error) {
			return s.connector.SearchCharges(ctx, account.ID, q)
		},
	}

	page, err := strategy.Resolve(ctx, mode)
	if err != nil {
		return domain.SearchPage[domain.Payment]{}, fmt.Errorf("SearchPayments: %w", err)
	}
	page.Links = s.links.Navigation(page.Links, PaymentsPath)
	return page, nil
}

func (s *PaymentService) CreatePayment(ctx context.Context, account domain.Account, p *request.CreatePayment, idempotencyKey string) (domain.Payment, error) {
	log := logging.FromContext(ctx)

	payment, err := s.connector.CreateCharge(ctx, account.ID, p, idempotencyKey)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("CreatePayment: %w", err)
	}

	log.Info("payment created",
		"payment_id", payment.ID,
		"account_id", account.ID,
		"amount", payment.Amount,
		"recurring", p.IsRecurring(),
	)
	return payment, nil
}

func (s *PaymentService) CancelPayment(ctx context.Context, account domain.Account, paymentID string) error {
	if err := s.connector.CancelCharge(ctx, account.ID, paymentID); err != nil {
		return fmt.Errorf("CancelPayment: %w", err)
	}
	logging.FromContext(ctx).Info("payment cancelled", "payment_id", paymentID, "account_id", account.ID)
	return nil
}

func (s *PaymentService) CapturePayment(ctx context.Context, account domain.Account, paymentID string) error {
	if err := s.connector.CaptureCharge(ctx, account.ID, paymentID); err != nil {
		return fmt.Errorf("CapturePayment: %w", err)
	}
	logging.FromContext(ctx).Info("payment captured", "payment_id", paymentID, "account_id", account.ID)
	return nil
}

// AuthorisePayment submits card details for a MOTO API payment. The
// one-time token identifies the payment, so no account is needed.
func (s *PaymentService) AuthorisePayment(ctx context.Context, a *request.Authorisation) error {
	if err := s.connector.Authorise(ctx, a); err != nil {
		return fmt.Errorf("AuthorisePayment: %w", err)
	}
	return nil
}
