package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/auth"
	"github.com/josh-kwaku/pay-publicapi/internal/domain"
	"github.com/josh-kwaku/pay-publicapi/internal/links"
	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/source"
)

const testBaseURL = "https://api.test"

var testAccount = domain.Account{ID: "42", TokenType: domain.TokenTypeCard}

// fakePayments records the arguments of the last call and returns the
// canned values.
type fakePayments struct {
	payment   domain.Payment
	events    domain.PaymentEvents
	refund    domain.Refund
	refunds   domain.Refunds
	payPage   domain.SearchPage[domain.Payment]
	refPage   domain.SearchPage[domain.Refund]
	agreement domain.Agreement
	mandate   domain.Mandate
	err       error

	gotMode           source.Mode
	gotPaymentID      string
	gotRefundID       string
	gotIdempotencyKey string
	gotCreate         *request.CreatePayment
	gotRefund         *request.CreateRefund
	gotSearch         request.PaymentSearch
	gotAuthorisation  *request.Authorisation
}

func (f *fakePayments) GetPayment(_ context.Context, _ domain.Account, mode source.Mode, id string) (domain.Payment, error) {
	f.gotMode, f.gotPaymentID = mode, id
	return f.payment, f.err
}

func (f *fakePayments) GetPaymentEvents(_ context.Context, _ domain.Account, mode source.Mode, id string) (domain.PaymentEvents, error) {
	f.gotMode, f.gotPaymentID = mode, id
	return f.events, f.err
}

func (f *fakePayments) SearchPayments(_ context.Context, _ domain.Account, mode source.Mode, params request.PaymentSearch) (domain.SearchPage[domain.Payment], error) {
	f.gotMode, f.gotSearch = mode, params
	return f.payPage, f.err
}

func (f *fakePayments) CreatePayment(_ context.Context, _ domain.Account, p *request.CreatePayment, key string) (domain.Payment, error) {
	f.gotCreate, f.gotIdempotencyKey = p, key
	return f.payment, f.err
}

func (f *fakePayments) CancelPayment(_ context.Context, _ domain.Account, id string) error {
	f.gotPaymentID = id
	return f.err
}

func (f *fakePayments) CapturePayment(_ context.Context, _ domain.Account, id string) error {
	f.gotPaymentID = id
	return f.err
}

func (f *fakePayments) AuthorisePayment(_ context.Context, a *request.Authorisation) error {
	f.gotAuthorisation = a
	return f.err
}

func (f *fakePayments) GetRefunds(_ context.Context, _ domain.Account, mode source.Mode, id string) (domain.Refunds, error) {
	f.gotMode, f.gotPaymentID = mode, id
	return f.refunds, f.err
}

func (f *fakePayments) GetRefund(_ context.Context, _ domain.Account, mode source.Mode, paymentID, refundID string) (domain.Refund, error) {
	f.gotMode, f.gotPaymentID, f.gotRefundID = mode, paymentID, refundID
	return f.refund, f.err
}

func (f *fakePayments) SearchRefunds(_ context.Context, _ domain.Account, mode source.Mode, _ request.RefundSearch) (domain.SearchPage[domain.Refund], error) {
	f.gotMode = mode
	return f.refPage, f.err
}

func (f *fakePayments) CreateRefund(_ context.Context, _ domain.Account, id string, r *request.CreateRefund) (domain.Refund, error) {
	f.gotPaymentID, f.gotRefund = id, r
	return f.refund, f.err
}

func (f *fakePayments) CreateAgreement(context.Context, domain.Account, *request.CreateAgreement) (domain.Agreement, error) {
	return f.agreement, f.err
}

func (f *fakePayments) CreateMandate(context.Context, domain.Account, *request.CreateMandate) (domain.Mandate, error) {
	return f.mandate, f.err
}

// newTestServer routes requests to a PaymentHandler as account, skipping
// token validation. A zero account means unauthenticated.
func newTestServer(svc *fakePayments, account domain.Account) http.Handler {
	h := NewPaymentHandler(svc, links.NewRewriter(testBaseURL), source.ModeDefault)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if account.ID != "" {
				req = req.WithContext(auth.ContextWithAccount(req.Context(), account))
			}
			next.ServeHTTP(w, req)
		})
	})
	h.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string             `json:"code"`
		Message string             `json:"message"`
		Details []ValidationDetail `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
