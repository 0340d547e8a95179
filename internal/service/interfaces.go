package service

import (
	"context"
	"net/url"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
)

type connectorClient interface {
	GetCharge(ctx context.Context, accountID, paymentID string) (domain.Payment, error)
	GetChargeEvents(ctx context.Context, accountID, paymentID string) (domain.PaymentEvents, error)
	GetRefunds(ctx context.Context, accountID, paymentID string) (domain.Refunds, error)
	GetRefund(ctx context.Context, accountID, paymentID, refundID string) (domain.Refund, error)
	SearchCharges(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Payment], error)
	SearchRefunds(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Refund], error)

	CreateCharge(ctx context.Context, accountID string, p *request.CreatePayment, idempotencyKey string) (domain.Payment, error)
	CancelCharge(ctx context.Context, accountID, paymentID string) error
	CaptureCharge(ctx context.Context, accountID, paymentID string) error
	CreateRefund(ctx context.Context, accountID, paymentID string, r *request.CreateRefund, amountAvailable int64) (domain.Refund, error)
	Authorise(ctx context.Context, a *request.Authorisation) error
	CreateAgreement(ctx context.Context, accountID string, a *request.CreateAgreement) (domain.Agreement, error)
	CreateMandate(ctx context.Context, accountID string, m *request.CreateMandate) (domain.Mandate, error)
}

type ledgerClient interface {
	GetTransaction(ctx context.Context, accountID, paymentID string) (domain.Payment, error)
	GetTransactionEvents(ctx context.Context, accountID, paymentID string) (domain.PaymentEvents, error)
	GetRefundsForPayment(ctx context.Context, accountID, paymentID string) (domain.Refunds, error)
	GetRefund(ctx context.Context, accountID, paymentID, refundID string) (domain.Refund, error)
	SearchPayments(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Payment], error)
	SearchRefunds(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Refund], error)
}
