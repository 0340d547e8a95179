package service

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
)

func (s *PaymentService) CreateAgreement(ctx context.Context, account domain.Account, a *request.CreateAgreement) (domain.Agreement, error) {
	agreement, err := s.connector.CreateAgreement(ctx, account.ID, a)
	if err != nil {
		return domain.Agreement{}, fmt.Errorf("CreateAgreement: %w", err)
	}
	logging.FromContext(ctx).Info("agreement created", "agreement_id", agreement.ID, "account_id", account.ID)
	return agreement, nil
}

// CreateMandate is only open to direct debit accounts.
func (s *PaymentService) CreateMandate(ctx context.Context, account domain.Account, m *request.CreateMandate) (domain.Mandate, error) {
	if account.TokenType != domain.TokenTypeDirectDebit {
		return domain.Mandate{}, fmt.Errorf("CreateMandate: %w", domain.ErrTokenTypeNotAllowed)
	}

	mandate, err := s.connector.CreateMandate(ctx, account.ID, m)
	if err != nil {
		return domain.Mandate{}, fmt.Errorf("CreateMandate: %w", err)
	}
	logging.FromContext(ctx).Info("mandate created", "mandate_id", mandate.ID, "account_id", account.ID)
	return mandate, nil
}
