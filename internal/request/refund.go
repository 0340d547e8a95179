package request

import (
	"context"

	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

// CreateRefund is a validated refund request. RefundAmountAvailable, when
// given, is the caller's view of the refundable balance and is compared
// against the backend's to reject stale refunds.
type CreateRefund struct {
	Amount                int64  `json:"amount" validate:"amount"`
	RefundAmountAvailable *int64 `json:"refund_amount_available,omitempty" validate:"omitempty,min=0"`
}

func DecodeCreateRefund(body []byte) (*CreateRefund, error) {
	family := validation.CreateRefundFamily

	doc, perr := validation.ParseDocument(body)
	if perr != nil {
		return nil, validation.Fail(family, perr)
	}

	var r CreateRefund
	if r.Amount, perr = doc.RequiredInt("amount"); perr != nil {
		return nil, validation.Fail(family, perr)
	}
	if r.RefundAmountAvailable, perr = doc.OptionalInt("refund_amount_available"); perr != nil {
		return nil, validation.Fail(family, perr)
	}

	report := validation.NewReport(family, validation.Check(context.Background(), &r)...)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return &r, nil
}
