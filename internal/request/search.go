package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

const MaxDisplaySize = 500

var PaymentStates = []string{
	"created", "started", "submitted", "capturable",
	"success", "failed", "cancelled", "error",
}

// Rules for search parameters, in validate tag syntax.
var (
	ruleDateTime    = "datetime=" + validation.LayoutDateTime
	ruleDate        = "datetime=" + validation.LayoutDate
	rulePage        = "positive_int"
	ruleDisplaySize = fmt.Sprintf("positive_int=%d", MaxDisplaySize)
)

// PaymentSearch is a validated payments search. Empty fields were not
// supplied and are not forwarded.
type PaymentSearch struct {
	Reference       string
	Email           string
	State           string
	CardBrand       string
	FromDate        string
	ToDate          string
	FromSettledDate string
	ToSettledDate   string
	Page            string
	DisplaySize     string
	CardholderName  string
	FirstDigits     string
	LastDigits      string
	AgreementID     string
}

type RefundSearch struct {
	FromDate        string
	ToDate          string
	FromSettledDate string
	ToSettledDate   string
	Page            string
	DisplaySize     string
}

type searchParam struct {
	name string
	dst  *string
	rule string
}

// checkParams copies each param from q into its destination and names every
// invalid one, in params order, in a single error.
func checkParams(family validation.Family, q url.Values, params []searchParam) error {
	var bad []string
	for _, p := range params {
		v := q.Get(p.name)
		*p.dst = v
		if v == "" || p.rule == "" {
			continue
		}
		if !validation.Valid(v, p.rule) {
			bad = append(bad, p.name)
		}
	}
	if len(bad) > 0 {
		return validation.Fail(family, validation.InvalidSearchParameters(bad))
	}
	return nil
}

func DecodePaymentSearch(q url.Values) (PaymentSearch, error) {
	var s PaymentSearch
	err := checkParams(validation.SearchPaymentsFamily, q, []searchParam{
		{"reference", &s.Reference, maxLen(validation.MaxReferenceLength)},
		{"email", &s.Email, maxLen(validation.MaxEmailLength)},
		{"state", &s.State, "oneof=" + strings.Join(PaymentStates, " ")},
		{"card_brand", &s.CardBrand, ""},
		{"from_date", &s.FromDate, ruleDateTime},
		{"to_date", &s.ToDate, ruleDateTime},
		{"from_settled_date", &s.FromSettledDate, ruleDate},
		{"to_settled_date", &s.ToSettledDate, ruleDate},
		{"page", &s.Page, rulePage},
		{"display_size", &s.DisplaySize, ruleDisplaySize},
		{"cardholder_name", &s.CardholderName, maxLen(validation.MaxCardholderNameLength)},
		{"first_digits_card_number", &s.FirstDigits, "len=6,number"},
		{"last_digits_card_number", &s.LastDigits, "len=4,number"},
		{"agreement_id", &s.AgreementID, maxLen(validation.MaxAgreementIDLength)},
	})
	if err != nil {
		return PaymentSearch{}, err
	}
	s.CardBrand = strings.ToLower(s.CardBrand)
	return s, nil
}

func DecodeRefundSearch(q url.Values) (RefundSearch, error) {
	var s RefundSearch
	err := checkParams(validation.SearchRefundsFamily, q, []searchParam{
		{"from_date", &s.FromDate, ruleDateTime},
		{"to_date", &s.ToDate, ruleDateTime},
		{"from_settled_date", &s.FromSettledDate, ruleDate},
		{"to_settled_date", &s.ToSettledDate, ruleDate},
		{"page", &s.Page, rulePage},
		{"display_size", &s.DisplaySize, ruleDisplaySize},
	})
	if err != nil {
		return RefundSearch{}, err
	}
	return s, nil
}

// Query returns the supplied parameters in their public names.
func (s PaymentSearch) Query() url.Values {
	return buildQuery(
		"reference", s.Reference,
		"email", s.Email,
		"state", s.State,
		"card_brand", s.CardBrand,
		"from_date", s.FromDate,
		"to_date", s.ToDate,
		"from_settled_date", s.FromSettledDate,
		"to_settled_date", s.ToSettledDate,
		"page", s.Page,
		"display_size", s.DisplaySize,
		"cardholder_name", s.CardholderName,
		"first_digits_card_number", s.FirstDigits,
		"last_digits_card_number", s.LastDigits,
		"agreement_id", s.AgreementID,
	)
}

func (s RefundSearch) Query() url.Values {
	return buildQuery(
		"from_date", s.FromDate,
		"to_date", s.ToDate,
		"from_settled_date", s.FromSettledDate,
		"to_settled_date", s.ToSettledDate,
		"page", s.Page,
		"display_size", s.DisplaySize,
	)
}

func buildQuery(kv ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}

func maxLen(n int) string { return fmt.Sprintf("max=%d", n) }
