// Package request turns raw JSON bodies and query strings into validated
// request models. Each decoder parses structurally required fields in a
// fixed order and stops at the first failure, then runs every semantic
// validator and reports all of their failures together.
package request

import (
	"context"
	"slices"

	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

const (
	AuthorisationModeWeb       = "web"
	AuthorisationModeMotoAPI   = "moto_api"
	AuthorisationModeAgreement = "agreement"

	SourceCardPaymentLink        = "CARD_PAYMENT_LINK"
	SourceCardAgentInitiatedMoto = "CARD_AGENT_INITIATED_MOTO"
)

type BillingAddress struct {
	Line1    *string `json:"line1,omitempty" validate:"omitempty,max=255"`
	Line2    *string `json:"line2,omitempty" validate:"omitempty,max=255"`
	Postcode *string `json:"postcode,omitempty" validate:"omitempty,max=25"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=255"`
	Country  *string `json:"country,omitempty"`
}

type CardholderDetails struct {
	CardholderName *string         `json:"cardholder_name,omitempty" validate:"omitempty,max=255"`
	BillingAddress *BillingAddress `json:"billing_address,omitempty"`
}

type Internal struct {
	Source string `json:"source" validate:"internal_source"`
}

// CreatePayment is a fully validated create-payment request. Semantic
// errors are reported in field order.
type CreatePayment struct {
	Amount                     int64              `json:"amount" validate:"amount"`
	Description                string             `json:"description" validate:"max=255"`
	Reference                  *string            `json:"reference,omitempty" validate:"omitempty,max=255"`
	AuthorisationMode          *string            `json:"authorisation_mode,omitempty" validate:"omitempty,authorisation_mode"`
	ReturnURL                  *string            `json:"return_url,omitempty" validate:"omitempty,web_url"`
	Language                   *string            `json:"language,omitempty" validate:"omitempty,language"`
	Email                      *string            `json:"email,omitempty" validate:"omitempty,max=254"`
	AgreementID                *string            `json:"agreement_id,omitempty" validate:"omitempty,max=26"`
	SetUpAgreement             *string            `json:"set_up_agreement,omitempty" validate:"omitempty,max=26"`
	DelayedCapture             *bool              `json:"delayed_capture,omitempty"`
	Moto                       *bool              `json:"moto,omitempty"`
	PrefilledCardholderDetails *CardholderDetails `json:"prefilled_cardholder_details,omitempty"`
	Metadata                   map[string]any     `json:"metadata,omitempty" validate:"omitempty,metadata"`
	Internal                   *Internal          `json:"internal,omitempty"`
}

// IsRecurring reports whether the payment takes money under an existing
// agreement.
func (p *CreatePayment) IsRecurring() bool { return p.AgreementID != nil }

// Options carries per-account policy into decoding.
type Options struct {
	// HTTPSOnly rejects non-https return URLs; set for live accounts.
	HTTPSOnly bool
}

func (o Options) context() context.Context {
	return validation.WithHTTPSOnly(context.Background(), o.HTTPSOnly)
}

// DecodeCreatePayment validates a create-payment body. On failure the error
// is a *validation.Report.
func DecodeCreatePayment(body []byte, opts Options) (*CreatePayment, error) {
	family := validation.CreatePaymentFamily

	doc, perr := validation.ParseDocument(body)
	if perr != nil {
		return nil, validation.Fail(family, perr)
	}

	p, perr := parseCreatePayment(doc)
	if perr != nil {
		return nil, validation.Fail(family, perr)
	}

	report := validation.NewReport(family, validateCreatePayment(opts.context(), p)...)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseCreatePayment(doc validation.Object) (*CreatePayment, *validation.Error) {
	var (
		p    CreatePayment
		perr *validation.Error
	)

	if p.Amount, perr = doc.RequiredInt("amount"); perr != nil {
		return nil, perr
	}
	if p.Description, perr = doc.RequiredString("description"); perr != nil {
		return nil, perr
	}
	if p.AgreementID, perr = doc.OptionalString("agreement_id"); perr != nil {
		return nil, perr
	}
	if p.AuthorisationMode, perr = doc.OptionalString("authorisation_mode"); perr != nil {
		return nil, perr
	}

	mode := ""
	if p.AuthorisationMode != nil {
		mode = *p.AuthorisationMode
	}

	if mode == AuthorisationModeAgreement && p.AgreementID == nil {
		return nil, validation.MissingAttribute("agreement_id")
	}

	// An agreement already carries the reference and needs no redirect back
	// to the service.
	referenceRequired := p.AgreementID == nil
	returnURLRequired := p.AgreementID == nil &&
		mode != AuthorisationModeMotoAPI &&
		mode != AuthorisationModeAgreement

	if referenceRequired {
		ref, perr := doc.RequiredString("reference")
		if perr != nil {
			return nil, perr
		}
		p.Reference = &ref
	} else if p.Reference, perr = doc.OptionalString("reference"); perr != nil {
		return nil, perr
	}

	urlType := validation.WithTypeMessage(validation.MsgInvalidURL)
	if returnURLRequired {
		u, perr := doc.RequiredString("return_url", urlType)
		if perr != nil {
			return nil, perr
		}
		p.ReturnURL = &u
	} else if p.ReturnURL, perr = doc.OptionalString("return_url", urlType); perr != nil {
		return nil, perr
	}

	if p.Language, perr = doc.OptionalString("language", validation.WithTypeMessage(validation.MsgLanguage)); perr != nil {
		return nil, perr
	}
	if p.Email, perr = doc.OptionalString("email"); perr != nil {
		return nil, perr
	}
	if p.DelayedCapture, perr = doc.OptionalBool("delayed_capture"); perr != nil {
		return nil, perr
	}
	if p.Moto, perr = doc.OptionalBool("moto"); perr != nil {
		return nil, perr
	}
	if p.SetUpAgreement, perr = doc.OptionalString("set_up_agreement"); perr != nil {
		return nil, perr
	}
	if p.PrefilledCardholderDetails, perr = parseCardholderDetails(doc); perr != nil {
		return nil, perr
	}
	meta, perr := doc.OptionalObject("metadata", validation.WithTypeMessage(validation.MsgMetadataObject))
	if perr != nil {
		return nil, perr
	}
	// An empty object carries nothing and is dropped, so the request encodes
	// back to an equivalent body.
	if meta != nil {
		if m, _ := meta.Value().Interface().(map[string]any); len(m) > 0 {
			p.Metadata = m
		}
	}
	if p.Internal, perr = parseInternal(doc); perr != nil {
		return nil, perr
	}

	return &p, nil
}

func parseCardholderDetails(doc validation.Object) (*CardholderDetails, *validation.Error) {
	obj, perr := doc.OptionalObject("prefilled_cardholder_details")
	if perr != nil || obj == nil {
		return nil, perr
	}

	var d CardholderDetails
	if d.CardholderName, perr = obj.OptionalString("cardholder_name"); perr != nil {
		return nil, perr
	}

	addr, perr := obj.OptionalObject("billing_address")
	if perr != nil {
		return nil, perr
	}
	if addr != nil {
		var a BillingAddress
		fields := []struct {
			name string
			dst  **string
		}{
			{"line1", &a.Line1},
			{"line2", &a.Line2},
			{"postcode", &a.Postcode},
			{"city", &a.City},
			{"country", &a.Country},
		}
		for _, f := range fields {
			if *f.dst, perr = addr.OptionalString(f.name); perr != nil {
				return nil, perr
			}
		}
		d.BillingAddress = &a
	}
	return &d, nil
}

func parseInternal(doc validation.Object) (*Internal, *validation.Error) {
	obj, perr := doc.OptionalObject("internal")
	if perr != nil || obj == nil {
		return nil, perr
	}
	source, perr := obj.OptionalString("source")
	if perr != nil {
		return nil, perr
	}
	if source == nil {
		return nil, nil
	}
	return &Internal{Source: *source}, nil
}

// validateCreatePayment runs the field rules, then the rules that depend on
// more than one field.
func validateCreatePayment(ctx context.Context, p *CreatePayment) []*validation.Error {
	errs := validation.Check(ctx, p)

	mode := ""
	if p.AuthorisationMode != nil {
		mode = *p.AuthorisationMode
	}
	if p.ReturnURL != nil && (mode == AuthorisationModeMotoAPI || mode == AuthorisationModeAgreement) {
		errs = slices.DeleteFunc(errs, func(e *validation.Error) bool { return e.Field == "return_url" })
		errs = append(errs, validation.InvalidAttribute("return_url",
			"Must not be provided when authorisation_mode is "+mode))
	}
	if p.SetUpAgreement != nil && p.AgreementID != nil {
		errs = append(errs, validation.InvalidAttribute("set_up_agreement",
			"Must not be provided together with agreement_id"))
	}
	return errs
}
