package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

const (
	transactionTypePayment = "PAYMENT"
	transactionTypeRefund  = "REFUND"
)

// LedgerClient reads transactions from the ledger. Every request is scoped
// to the caller's gateway account.
type LedgerClient struct {
	client
}

func NewLedgerClient(baseURL string, timeout time.Duration) *LedgerClient {
	return &LedgerClient{client: newClient(NameLedger, baseURL, timeout)}
}

func transactionPath(id string) string {
	return "/v1/transaction/" + url.PathEscape(id)
}

func (c *LedgerClient) GetTransaction(ctx context.Context, accountID, paymentID string) (domain.Payment, error) {
	var out transactionJSON
	err := c.do(ctx, call{
		op:     "GetTransaction",
		method: http.MethodGet,
		path:   transactionPath(paymentID),
		query:  url.Values{"account_id": {accountID}, "transaction_type": {transactionTypePayment}},
		out:    &out,
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return out.toPayment(), nil
}

type transactionEventsJSON struct {
	TransactionID string `json:"transaction_id"`
	Events        []struct {
		State     stateJSON `json:"state"`
		Timestamp string    `json:"timestamp"`
	} `json:"events"`
}

func (c *LedgerClient) GetTransactionEvents(ctx context.Context, accountID, paymentID string) (domain.PaymentEvents, error) {
	var out transactionEventsJSON
	err := c.do(ctx, call{
		op:     "GetTransactionEvents",
		method: http.MethodGet,
		path:   transactionPath(paymentID) + "/event",
		query:  url.Values{"gateway_account_id": {accountID}},
		out:    &out,
	})
	if err != nil {
		return domain.PaymentEvents{}, err
	}

	events := make([]domain.PaymentEvent, len(out.Events))
	for i, e := range out.Events {
		events[i] = domain.PaymentEvent{PaymentID: out.TransactionID, State: e.State.toDomain(), Updated: e.Timestamp}
	}
	return domain.PaymentEvents{PaymentID: out.TransactionID, Events: events}, nil
}

type childTransactionsJSON struct {
	ParentTransactionID string            `json:"parent_transaction_id"`
	Transactions        []transactionJSON `json:"transactions"`
}

func (c *LedgerClient) GetRefundsForPayment(ctx context.Context, accountID, paymentID string) (domain.Refunds, error) {
	var out childTransactionsJSON
	err := c.do(ctx, call{
		op:     "GetRefundsForPayment",
		method: http.MethodGet,
		path:   transactionPath(paymentID) + "/transaction",
		query:  url.Values{"gateway_account_id": {accountID}, "transaction_type": {transactionTypeRefund}},
		out:    &out,
	})
	if err != nil {
		return domain.Refunds{}, err
	}

	refunds := make([]domain.Refund, len(out.Transactions))
	for i, t := range out.Transactions {
		r := t.toRefund()
		if r.PaymentID == "" {
			r.PaymentID = paymentID
		}
		refunds[i] = r
	}
	return domain.Refunds{PaymentID: paymentID, Refunds: refunds}, nil
}

func (c *LedgerClient) GetRefund(ctx context.Context, accountID, paymentID, refundID string) (domain.Refund, error) {
	var out transactionJSON
	err := c.do(ctx, call{
		op:     "GetRefund",
		method: http.MethodGet,
		path:   transactionPath(refundID),
		query: url.Values{
			"account_id":         {accountID},
			"parent_external_id": {paymentID},
			"transaction_type":   {transactionTypeRefund},
		},
		out: &out,
	})
	if err != nil {
		return domain.Refund{}, err
	}
	r := out.toRefund()
	if r.PaymentID == "" {
		r.PaymentID = paymentID
	}
	return r, nil
}

func searchQuery(accountID, transactionType string, q url.Values) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set("account_id", accountID)
	out.Set("transaction_type", transactionType)
	return out
}

func (c *LedgerClient) SearchPayments(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Payment], error) {
	var out searchJSON[transactionJSON]
	err := c.do(ctx, call{
		op:     "SearchPayments",
		method: http.MethodGet,
		path:   "/v1/transaction",
		query:  searchQuery(accountID, transactionTypePayment, q),
		out:    &out,
	})
	if err != nil {
		return domain.SearchPage[domain.Payment]{}, err
	}
	return mapPage(out, transactionJSON.toPayment), nil
}

func (c *LedgerClient) SearchRefunds(ctx context.Context, accountID string, q url.Values) (domain.SearchPage[domain.Refund], error) {
	var out searchJSON[transactionJSON]
	err := c.do(ctx, call{
		op:     "SearchRefunds",
		method: http.MethodGet,
		path:   "/v1/transaction",
		query:  searchQuery(accountID, transactionTypeRefund, q),
		out:    &out,
	})
	if err != nil {
		return domain.SearchPage[domain.Refund]{}, err
	}
	return mapPage(out, transactionJSON.toRefund), nil
}
