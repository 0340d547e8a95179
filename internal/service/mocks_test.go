package service

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
)

type mockConnector struct {
	mock.Mock
}

func (m *mockConnector) GetCharge(ctx context.Context, accountID, paymentID string) (domain.Payment, error) {
	args := m.Called(ctx, accountID, paymentID)
	return args.Get(0).(domain.Payment), args.Error(1)
}

func (m *mockConnector) GetChargeEvents(ctx context.Context, accountID, paymentID string) (domain.PaymentEvents, error) {
	args := m.Called(ctx, accountID, paymentID)
	return args.Get(0).(domain.PaymentEvents), args.Error(1)
}

func (m *mockConnector) GetRefunds(ctx context.Context, accountID, paymentID string) (domain.Refunds, error) {
	args := m.Called(ctx, accountID, paymentID)
	return args.Get(0).(domain.Refunds), args.Error(1)
}

func (m *mockConnector) GetRefund(ctx context.Context, accountID, paymentID, refundID string) (domain.Refund, error) {
	args := m.Called(ctx, accountID, paymentID, refundID)
	return args.Get(0).(domain.Refund), args.Error(1)
}

func (m *mockConnector) SearchCharges(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Payment], error) {
	args := m.Called(ctx, accountID, q)
	return args.Get(0).(domain.SearchPage[domain.Payment]), args.Error(1)
}

func (m *mockConnector) SearchRefunds(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Refund], error) {
	args := m.Called(ctx, accountID, q)
	return args.Get(0).(domain.SearchPage[domain.Refund]), args.Error(1)
}

func (m *mockConnector) CreateCharge(ctx context.Context, accountID string, p *request.CreatePayment, idempotencyKey string) (domain.Payment, error) {
	args := m.Called(ctx, accountID, p, idempotencyKey)
	return args.Get(0).(domain.Payment), args.Error(1)
}

func (m *mockConnector) CancelCharge(ctx context.Context, accountID, paymentID string) error {
	return m.Called(ctx, accountID, paymentID).Error(0)
}

func (m *mockConnector) CaptureCharge(ctx context.Context, accountID, paymentID string) error {
	return m.Called(ctx, accountID, paymentID).Error(0)
}

func (m *mockConnector) CreateRefund(ctx context.Context, accountID, paymentID string, r *request.CreateRefund, amountAvailable int64) (domain.Refund, error) {
	args := m.Called(ctx, accountID, paymentID, r, amountAvailable)
	return args.Get(0).(domain.Refund), args.Error(1)
}

func (m *mockConnector) Authorise(ctx context.Context, a *request.Authorisation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockConnector) CreateAgreement(ctx context.Context, accountID string, a *request.CreateAgreement) (domain.Agreement, error) {
	args := m.Called(ctx, accountID, a)
	return args.Get(0).(domain.Agreement), args.Error(1)
}

func (m *mockConnector) CreateMandate(ctx context.Context, accountID string, md *request.CreateMandate) (domain.Mandate, error) {
	args := m.Called(ctx, accountID, md)
	return args.Get(0).(domain.Mandate), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetTransaction(ctx context.Context, accountID, paymentID string) (domain.Payment, error) {
	args := m.Called(ctx, accountID, paymentID)
	return args.Get(0).(domain.Payment), args.Error(1)
}

func (m *mockLedger) GetTransactionEvents(ctx context.Context, accountID, paymentID string) (domain.PaymentEvents, error) {
	args := m.Called(ctx, accountID, paymentID)
	return args.Get(0).(domain.PaymentEvents), args.Error(1)
}

func (m *mockLedger) GetRefundsForPayment(ctx context.Context, accountID, paymentID string) (domain.Refunds, error) {
	args := m.Called(ctx, accountID, paymentID)
	return args.Get(0).(domain.Refunds), args.Error(1)
}

func (m *mockLedger) GetRefund(ctx context.Context, accountID, paymentID, refundID string) (domain.Refund, error) {
	args := m.Called(ctx, accountID, paymentID, refundID)
	return args.Get(0).(domain.Refund), args.Error(1)
}

func (m *mockLedger) SearchPayments(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Payment], error) {
	args := m.Called(ctx, accountID, q)
	return args.Get(0).(domain.SearchPage[domain.Payment]), args.Error(1)
}

func (m *mockLedger) SearchRefunds(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Refund], error) {
	args := m.Called(ctx, accountID, q)
	return args.Get(0).(domain.SearchPage[domain.Refund]), args.Error(1)
}
