package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVar_Amount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantMsg string
	}{
		{name: "negative", amount: -1, wantMsg: "Invalid attribute value: amount. Must be greater than or equal to 1"},
		{name: "zero", amount: 0, wantMsg: "Invalid attribute value: amount. Must be greater than or equal to 1"},
		{name: "lower bound", amount: 1},
		{name: "typical", amount: 4500},
		{name: "upper bound", amount: 10_000_000},
		{name: "above upper bound", amount: 10_000_001, wantMsg: "Invalid attribute value: amount. Must be less than or equal to 10000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Var(context.Background(), "amount", tc.amount, "amount")
			if tc.wantMsg == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, KindInvalidAttributeValue, err.Code)
			assert.Equal(t, "amount", err.Field)
			assert.Equal(t, tc.wantMsg, err.Message)
		})
	}
}

func TestVar_WebURL(t *testing.T) {
	tooLongValid := "https://example.com/" + strings.Repeat("a", 2001-len("https://example.com/"))
	tooLongInvalid := strings.Repeat("x", 2001)
	exactlyMax := "https://example.com/" + strings.Repeat("a", 2000-len("https://example.com/"))

	tests := []struct {
		name      string
		value     string
		httpsOnly bool
		wantMsg   string
	}{
		{name: "valid https", value: "https://service.example/return"},
		{name: "valid http on test account", value: "http://localhost:8080/return"},
		{name: "blank", value: "   ", wantMsg: "Invalid attribute value: return_url. Must be a valid URL format"},
		{name: "not a url", value: "not a url", wantMsg: "Invalid attribute value: return_url. Must be a valid URL format"},
		{name: "no host", value: "https://", wantMsg: "Invalid attribute value: return_url. Must be a valid URL format"},
		{name: "unsupported scheme", value: "ftp://example.com/x", wantMsg: "Invalid attribute value: return_url. Must be a valid URL format"},
		{name: "exactly max length", value: exactlyMax},
		{name: "too long but valid", value: tooLongValid, wantMsg: "Invalid attribute value: return_url. Must be less than or equal to 2000 characters length"},
		{name: "too long and invalid reports length", value: tooLongInvalid, wantMsg: "Invalid attribute value: return_url. Must be less than or equal to 2000 characters length"},
		{name: "http rejected for live account", value: "http://service.example/return", httpsOnly: true, wantMsg: "Invalid attribute value: return_url. Must be a https URL for live accounts"},
		{name: "https accepted for live account", value: "https://service.example/return", httpsOnly: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := WithHTTPSOnly(context.Background(), tc.httpsOnly)
			err := Var(ctx, "return_url", tc.value, "web_url")
			if tc.wantMsg == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tc.wantMsg, err.Message)
		})
	}
}

func TestVar_MaxLengthCountsCharacters(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, Var(ctx, "reference", strings.Repeat("r", 255), "max=255"))
	assert.Nil(t, Var(ctx, "reference", strings.Repeat("é", 255), "max=255"))

	err := Var(ctx, "reference", strings.Repeat("r", 256), "max=255")
	require.NotNil(t, err)
	assert.Equal(t, "Invalid attribute value: reference. Must be less than or equal to 255 characters length", err.Message)
}

func TestVar_AliasMessages(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		valid   []string
		invalid []string
		wantMsg string
	}{
		{
			name:    "language",
			tag:     "language",
			valid:   []string{"en", "cy"},
			invalid: []string{"EN", "fr", ""},
			wantMsg: `Must be "en" or "cy"`,
		},
		{
			name:    "card number",
			tag:     "card_number",
			valid:   []string{"424242424242", "1234567890123456789"},
			invalid: []string{"12345678901", "4242 4242 4242 4242", "12345678901234567890", "x"},
			wantMsg: MsgCardNumber,
		},
		{
			name:    "cvc",
			tag:     "cvc",
			valid:   []string{"123", "1234"},
			invalid: []string{"12", "12a", "12345"},
			wantMsg: MsgCVC,
		},
		{
			name:    "expiry date",
			tag:     "expiry_date",
			valid:   []string{"01/29", "12/30"},
			invalid: []string{"13/29", "00/29", "12/2029", "1229"},
			wantMsg: MsgExpiryDate,
		},
		{
			name:    "internal source",
			tag:     "internal_source",
			valid:   []string{"CARD_PAYMENT_LINK", "CARD_AGENT_INITIATED_MOTO"},
			invalid: []string{"CARD_API", ""},
			wantMsg: MsgInternalSource,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range tc.valid {
				assert.Nil(t, Var(context.Background(), "field", v, tc.tag), v)
			}
			for _, v := range tc.invalid {
				err := Var(context.Background(), "field", v, tc.tag)
				require.NotNil(t, err, v)
				assert.Equal(t, "Invalid attribute value: field. "+tc.wantMsg, err.Message)
			}
		})
	}
}

type checkSample struct {
	Amount  int64        `json:"amount" validate:"amount"`
	Note    *string      `json:"note,omitempty" validate:"omitempty,max=5"`
	Nested  *checkNested `json:"nested,omitempty"`
	Missing *checkNested `json:"missing,omitempty"`
}

type checkNested struct {
	City *string `json:"city,omitempty" validate:"omitempty,max=3"`
}

func TestCheck(t *testing.T) {
	long := "abcdef"
	empty := ""

	t.Run("reports json paths in declaration order", func(t *testing.T) {
		errs := Check(context.Background(), &checkSample{
			Amount: 0,
			Note:   &long,
			Nested: &checkNested{City: &long},
		})

		require.Len(t, errs, 3)
		assert.Equal(t, "amount", errs[0].Field)
		assert.Equal(t, "note", errs[1].Field)
		assert.Equal(t, "nested.city", errs[2].Field)
		assert.Equal(t, "Invalid attribute value: nested.city. Must be less than or equal to 3 characters length", errs[2].Message)
	})

	t.Run("absent optional fields are not checked", func(t *testing.T) {
		assert.Empty(t, Check(context.Background(), &checkSample{Amount: 5}))
	})

	t.Run("present empty strings are checked", func(t *testing.T) {
		errs := Check(context.Background(), &struct {
			URL *string `json:"return_url" validate:"omitempty,web_url"`
		}{URL: &empty})

		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid attribute value: return_url. Must be a valid URL format", errs[0].Message)
	})
}

func TestValid(t *testing.T) {
	tests := []struct {
		value string
		tag   string
		want  bool
	}{
		{"2015-08-14T12:35:00Z", "datetime=" + LayoutDateTime, true},
		{"2015-08-14T12:35:00.123Z", "datetime=" + LayoutDateTime, true},
		{"2015-08-14T12:35:00+01:00", "datetime=" + LayoutDateTime, true},
		{"2015-08-14T12:35:00", "datetime=" + LayoutDateTime, false},
		{"2015-08-14", "datetime=" + LayoutDateTime, false},
		{"2015-08-14", "datetime=" + LayoutDate, true},
		{"14/08/2015", "datetime=" + LayoutDate, false},
		{"424242", "len=6,number", true},
		{"42424a", "len=6,number", false},
		{"1", "positive_int", true},
		{"0", "positive_int", false},
		{"abc", "positive_int", false},
		{"500", "positive_int=500", true},
		{"501", "positive_int=500", false},
	}

	for _, tc := range tests {
		t.Run(tc.tag+" "+tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, Valid(tc.value, tc.tag))
		})
	}
}
