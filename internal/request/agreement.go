package request

import (
	"context"

	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

type CreateAgreement struct {
	Reference      string  `json:"reference" validate:"max=255"`
	Description    string  `json:"description" validate:"max=255"`
	UserIdentifier *string `json:"user_identifier,omitempty" validate:"omitempty,max=255"`
}

func DecodeCreateAgreement(body []byte) (*CreateAgreement, error) {
	family := validation.CreateAgreementFamily

	doc, perr := validation.ParseDocument(body)
	if perr != nil {
		return nil, validation.Fail(family, perr)
	}

	var a CreateAgreement
	if a.Reference, perr = doc.RequiredString("reference"); perr != nil {
		return nil, validation.Fail(family, perr)
	}
	if a.Description, perr = doc.RequiredString("description"); perr != nil {
		return nil, validation.Fail(family, perr)
	}
	if a.UserIdentifier, perr = doc.OptionalString("user_identifier"); perr != nil {
		return nil, validation.Fail(family, perr)
	}

	report := validation.NewReport(family, validation.Check(context.Background(), &a)...)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateMandate sets up a direct debit mandate. The payer is sent to
// ReturnURL once they have completed the mandate journey.
type CreateMandate struct {
	ReturnURL   string  `json:"return_url" validate:"web_url"`
	Reference   string  `json:"reference" validate:"max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

func DecodeCreateMandate(body []byte, opts Options) (*CreateMandate, error) {
	family := validation.CreateMandateFamily

	doc, perr := validation.ParseDocument(body)
	if perr != nil {
		return nil, validation.Fail(family, perr)
	}

	var m CreateMandate
	if m.ReturnURL, perr = doc.RequiredString("return_url", validation.WithTypeMessage(validation.MsgInvalidURL)); perr != nil {
		return nil, validation.Fail(family, perr)
	}
	if m.Reference, perr = doc.RequiredString("reference"); perr != nil {
		return nil, validation.Fail(family, perr)
	}
	if m.Description, perr = doc.OptionalString("description"); perr != nil {
		return nil, validation.Fail(family, perr)
	}

	report := validation.NewReport(family, validation.Check(opts.context(), &m)...)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}
