package service

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/source"
)

func (s *PaymentService) GetRefunds(ctx context.Context, account domain.Account, mode source.Mode, paymentID string) (domain.Refunds, error) {
	fromLedger := func(ctx context.Context) (domain.Refunds, error) {
		return s.ledger.GetRefundsForPayment(ctx, account.ID, paymentID)
	}
	strategy := source.Strategy[domain.Refunds]{
		Operation:       "get_refunds",
		LedgerOnly:      fromLedger,
		FutureBehaviour: fromLedger,
		Default: func(ctx context.Context) (domain.Refunds, error) {
			return s.connector.GetRefunds(ctx, account.ID, paymentID)
		},
	}

	refunds, err := strategy.Resolve(ctx, mode)
	if err != nil {
		return domain.Refunds{}, fmt.Errorf("GetRefunds: %w", err)
	}
	return refunds, nil
}

func (s *PaymentService) GetRefund(ctx context.Context, account domain.Account, mode source.Mode, paymentID, refundID string) (domain.Refund, error) {
	strategy := source.Strategy[domain.Refund]{
		Operation: "get_refund",
		LedgerOnly: func(ctx context.Context) (domain.Refund, error) {
			return s.ledger.GetRefund(ctx, account.ID, paymentID, refundID)
		},
		Default: func(ctx context.Context) (domain.Refund, error) {
			return s.connector.GetRefund(ctx, account.ID, paymentID, refundID)
		},
	}

	refund, err := strategy.Resolve(ctx, mode)
	if err != nil {
		return domain.Refund{}, fmt.Errorf("GetRefund: %w", err)
	}
	return refund, nil
}

func (s *PaymentService) SearchRefunds(ctx context.Context, account domain.Account, mode source.Mode, params request.RefundSearch) (domain.SearchPage[domain.Refund], error) {
	q := params.Query()
	strategy := source.Strategy[domain.SearchPage[domain.Refund]]{
		Operation: "search_refunds",
		LedgerOnly: func(ctx context.Context) (domain.SearchPage[domain.Refund], error) {
			return s.ledger.SearchRefunds(ctx, account.ID, q)
		},
		Default: func(ctx context.Context) (domain.SearchPage[domain.Refund], error) {
			return s.connector.SearchRefunds(ctx, account.ID, q)
		},
	}

	page, err := strategy.Resolve(ctx, mode)
	if err != nil {
		return domain.SearchPage[domain.Refund]{}, fmt.Errorf("SearchRefunds: %w", err)
	}
	page.Links = s.links.Navigation(page.Links, RefundsPath)
	return page, nil
}

// CreateRefund refunds part or all of a payment. Without a caller-supplied
// refund_amount_available the current one is read from the connector first,
// so a refund racing another refund is still rejected by the connector.
func (s *PaymentService) CreateRefund(ctx context.Context, account domain.Account, paymentID string, r *request.CreateRefund) (domain.Refund, error) {
	log := logging.FromContext(ctx)

	var available int64
	if r.RefundAmountAvailable == nil {
		payment, err := s.connector.GetCharge(ctx, account.ID, paymentID)
		if err != nil {
			return domain.Refund{}, fmt.Errorf("CreateRefund: load payment: %w", err)
		}
		if payment.RefundSummary == nil {
			return domain.Refund{}, fmt.Errorf("CreateRefund: %w", domain.ErrRefundNotAvailable)
		}
		available = payment.RefundSummary.AmountAvailable
	}

	refund, err := s.connector.CreateRefund(ctx, account.ID, paymentID, r, available)
	if err != nil {
		return domain.Refund{}, fmt.Errorf("CreateRefund: %w", err)
	}

	log.Info("refund submitted",
		"refund_id", refund.ID,
		"payment_id", paymentID,
		"account_id", account.ID,
		"amount", refund.Amount,
	)
	return refund, nil
}
