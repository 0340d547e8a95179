package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

func TestDecodePaymentSearch_Valid(t *testing.T) {
	q := url.Values{
		"reference":                {"ref-1"},
		"state":                    {"success"},
		"card_brand":               {"VISA"},
		"from_date":                {"2024-01-01T00:00:00Z"},
		"to_date":                  {"2024-01-31T23:59:59+01:00"},
		"from_settled_date":        {"2024-01-02"},
		"page":                     {"2"},
		"display_size":             {"500"},
		"first_digits_card_number": {"424242"},
		"last_digits_card_number":  {"4242"},
		"unknown":                  {"ignored"},
	}

	s, err := DecodePaymentSearch(q)
	require.NoError(t, err)
	assert.Equal(t, "visa", s.CardBrand)
	assert.Equal(t, "success", s.State)

	forwarded := s.Query()
	assert.Equal(t, "visa", forwarded.Get("card_brand"))
	assert.Equal(t, "2", forwarded.Get("page"))
	assert.False(t, forwarded.Has("email"))
	assert.False(t, forwarded.Has("unknown"))
	assert.Len(t, forwarded, 10)
}

func TestDecodePaymentSearch_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		query   url.Values
		message string
	}{
		{
			name:    "single bad state",
			query:   url.Values{"state": {"paid"}},
			message: "Invalid parameters: state. See Public API documentation for the correct data formats",
		},
		{
			name: "every bad parameter named in declared order",
			query: url.Values{
				"display_size": {"501"},
				"from_date":    {"2024-01-01"},
				"page":         {"0"},
				"state":        {"paid"},
			},
			message: "Invalid parameters: state, from_date, page, display_size. See Public API documentation for the correct data formats",
		},
		{
			name: "card digits",
			query: url.Values{
				"first_digits_card_number": {"4242"},
				"last_digits_card_number":  {"42a2"},
			},
			message: "Invalid parameters: first_digits_card_number, last_digits_card_number. See Public API documentation for the correct data formats",
		},
		{
			name:    "non numeric page",
			query:   url.Values{"page": {"two"}},
			message: "Invalid parameters: page. See Public API documentation for the correct data formats",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePaymentSearch(tc.query)
			report := reportOf(t, err)
			require.Len(t, report.Errors, 1)
			assert.Equal(t, validation.KindInvalidSearchParameters, report.First().Code)
			assert.Equal(t, "P0401", report.Family.Code(report.First().Code))
			assert.Equal(t, tc.message, report.First().Message)
		})
	}
}

func TestDecodeRefundSearch(t *testing.T) {
	s, err := DecodeRefundSearch(url.Values{"from_settled_date": {"2024-02-29"}, "display_size": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"from_settled_date": {"2024-02-29"}, "display_size": {"1"}}, s.Query())

	_, err = DecodeRefundSearch(url.Values{"to_settled_date": {"2023-02-29"}, "to_date": {"yesterday"}})
	report := reportOf(t, err)
	assert.Equal(t, "P1101", report.Family.Code(report.First().Code))
	assert.Equal(t,
		"Invalid parameters: to_date, to_settled_date. See Public API documentation for the correct data formats",
		report.First().Message)
}
