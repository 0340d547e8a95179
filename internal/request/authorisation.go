package request

import (
	"context"
	"log/slog"

	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

// Authorisation carries card details for a MOTO API payment. It is never
// logged: the card number and CVC must not leave this process except
// towards the connector.
type Authorisation struct {
	OneTimeToken   string `json:"one_time_token"`
	CardNumber     string `json:"card_number" validate:"card_number"`
	CVC            string `json:"cvc" validate:"cvc"`
	ExpiryDate     string `json:"expiry_date" validate:"expiry_date"`
	CardholderName string `json:"cardholder_name" validate:"max=255"`
}

func (a Authorisation) LogValue() slog.Value { return slog.StringValue("[REDACTED]") }

func DecodeAuthorisation(body []byte) (*Authorisation, error) {
	family := validation.AuthorisationFamily

	doc, perr := validation.ParseDocument(body)
	if perr != nil {
		return nil, validation.Fail(family, perr)
	}

	var a Authorisation
	fields := []struct {
		name string
		dst  *string
	}{
		{"one_time_token", &a.OneTimeToken},
		{"card_number", &a.CardNumber},
		{"cvc", &a.CVC},
		{"expiry_date", &a.ExpiryDate},
		{"cardholder_name", &a.CardholderName},
	}
	for _, f := range fields {
		if *f.dst, perr = doc.RequiredString(f.name); perr != nil {
			return nil, validation.Fail(family, perr)
		}
	}

	report := validation.NewReport(family, validation.Check(context.Background(), &a)...)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}
