package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/source"
)

func TestGetRefunds_FutureBehaviourMatchesLedgerOnly(t *testing.T) {
	for _, mode := range []source.Mode{source.ModeLedgerOnly, source.ModeFutureBehaviour} {
		t.Run(string(mode), func(t *testing.T) {
			svc, c, l := newTestService()
			l.On("GetRefundsForPayment", mock.Anything, "42", "pay_1").
				Return(domain.Refunds{PaymentID: "pay_1"}, nil).Once()

			got, err := svc.GetRefunds(context.Background(), cardAccount, mode, "pay_1")
			require.NoError(t, err)
			assert.Equal(t, "pay_1", got.PaymentID)
			c.AssertNotCalled(t, "GetRefunds", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetRefund_Default(t *testing.T) {
	svc, c, l := newTestService()
	c.On("GetRefund", mock.Anything, "42", "pay_1", "rf_1").Return(domain.Refund{ID: "rf_1"}, nil).Once()

	got, err := svc.GetRefund(context.Background(), cardAccount, source.ModeDefault, "pay_1", "rf_1")
	require.NoError(t, err)
	assert.Equal(t, "rf_1", got.ID)
	l.AssertNotCalled(t, "GetRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchRefunds_ConnectorByDefault(t *testing.T) {
	params, err := request.DecodeRefundSearch(url.Values{"display_size": {"5"}})
	require.NoError(t, err)

	svc, c, _ := newTestService()
	c.On("SearchRefunds", mock.Anything, "42", url.Values{"display_size": {"5"}}).
		Return(domain.SearchPage[domain.Refund]{
			Links: domain.NavigationLinks{Last: &domain.Link{Href: "http://connector/v1/refunds/account/42?page=4&display_size=5"}},
		}, nil).Once()

	page, err := svc.SearchRefunds(context.Background(), cardAccount, source.ModeDefault, params)
	require.NoError(t, err)
	require.NotNil(t, page.Links.Last)
	assert.Equal(t, "https://api.public/v1/refunds?page=4&display_size=5", page.Links.Last.Href)
	assert.Equal(t, "GET", page.Links.Last.Method)
}

func TestCreateRefund(t *testing.T) {
	t.Run("reads amount available from the payment", func(t *testing.T) {
		svc, c, _ := newTestService()
		req := &request.CreateRefund{Amount: 300}
		c.On("GetCharge", mock.Anything, "42", "pay_1").
			Return(domain.Payment{ID: "pay_1", RefundSummary: &domain.RefundSummary{AmountAvailable: 900}}, nil).Once()
		c.On("CreateRefund", mock.Anything, "42", "pay_1", req, int64(900)).
			Return(domain.Refund{ID: "rf_1", Amount: 300}, nil).Once()

		got, err := svc.CreateRefund(context.Background(), cardAccount, "pay_1", req)
		require.NoError(t, err)
		assert.Equal(t, "rf_1", got.ID)
		c.AssertExpectations(t)
	})

	t.Run("caller supplied amount available", func(t *testing.T) {
		svc, c, _ := newTestService()
		available := int64(500)
		req := &request.CreateRefund{Amount: 300, RefundAmountAvailable: &available}
		c.On("CreateRefund", mock.Anything, "42", "pay_1", req, int64(0)).
			Return(domain.Refund{ID: "rf_2"}, nil).Once()

		_, err := svc.CreateRefund(context.Background(), cardAccount, "pay_1", req)
		require.NoError(t, err)
		c.AssertNotCalled(t, "GetCharge", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payment without refund summary", func(t *testing.T) {
		svc, c, _ := newTestService()
		c.On("GetCharge", mock.Anything, "42", "pay_1").Return(domain.Payment{ID: "pay_1"}, nil).Once()

		_, err := svc.CreateRefund(context.Background(), cardAccount, "pay_1", &request.CreateRefund{Amount: 1})
		assert.ErrorIs(t, err, domain.ErrRefundNotAvailable)
	})
}

func TestCreateMandate_RequiresDirectDebitAccount(t *testing.T) {
	svc, c, _ := newTestService()
	req := &request.CreateMandate{ReturnURL: "https://a.example", Reference: "m"}

	_, err := svc.CreateMandate(context.Background(), cardAccount, req)
	assert.ErrorIs(t, err, domain.ErrTokenTypeNotAllowed)
	c.AssertNotCalled(t, "CreateMandate", mock.Anything, mock.Anything, mock.Anything)

	dd := domain.Account{ID: "7", TokenType: domain.TokenTypeDirectDebit}
	c.On("CreateMandate", mock.Anything, "7", req).Return(domain.Mandate{ID: "md_1"}, nil).Once()
	m, err := svc.CreateMandate(context.Background(), dd, req)
	require.NoError(t, err)
	assert.Equal(t, "md_1", m.ID)
}
