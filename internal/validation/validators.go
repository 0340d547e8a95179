package validation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinAmount = 1
	MaxAmount = 10_000_000

	MaxURLLength = 2000

	MaxReferenceLength      = 255
	MaxDescriptionLength    = 255
	MaxCardholderNameLength = 255
	MaxAddressLineLength    = 255
	MaxCityLength           = 255
	MaxPostcodeLength       = 25
	MaxEmailLength          = 254
	MaxAgreementIDLength    = 26
	MaxUserIdentifierLength = 255
)

const (
	MsgInvalidURL        = "Must be a valid URL format"
	MsgHTTPSOnly         = "Must be a https URL for live accounts"
	MsgLanguage          = `Must be "en" or "cy"`
	MsgAuthorisationMode = "Must be one of web, moto_api, agreement"
	MsgInternalSource    = "Accepted values are only CARD_PAYMENT_LINK, CARD_AGENT_INITIATED_MOTO"
	MsgCardNumber        = "Must be between 12 and 19 digits"
	MsgCVC               = "Must contain 3 or 4 digits"
	MsgExpiryDate        = "Must be a valid date with the format MM/YY"
)

// Tag layouts accepted by the datetime rule.
const (
	LayoutDateTime = "2006-01-02T15:04:05Z07:00"
	LayoutDate     = "2006-01-02"
)

// Aliases name the rule sets shared by several request shapes. A failing
// alias reports the alias as its tag, so it can carry one message for all
// of its parts.
var aliases = map[string]string{
	"amount":             fmt.Sprintf("min=%d,max=%d", MinAmount, MaxAmount),
	"web_url":            fmt.Sprintf("max=%d,http_url,https_live", MaxURLLength),
	"language":           "oneof=en cy",
	"authorisation_mode": "oneof=web moto_api agreement",
	"internal_source":    "oneof=CARD_PAYMENT_LINK CARD_AGENT_INITIATED_MOTO",
	"card_number":        "number,min=12,max=19",
	"cvc":                "number,min=3,max=4",
}

var tagMessages = map[string]string{
	"http_url":           MsgInvalidURL,
	"https_live":         MsgHTTPSOnly,
	"language":           MsgLanguage,
	"authorisation_mode": MsgAuthorisationMode,
	"internal_source":    MsgInternalSource,
	"card_number":        MsgCardNumber,
	"cvc":                MsgCVC,
	"expiry_date":        MsgExpiryDate,
}

var expiryDatePattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Errors name fields the way the client sent them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for alias, tags := range aliases {
		v.RegisterAlias(alias, tags)
	}
	mustRegister(v.RegisterValidation("expiry_date", isExpiryDate))
	mustRegister(v.RegisterValidation("metadata", isMetadata))
	mustRegister(v.RegisterValidation("positive_int", isPositiveInt))
	mustRegister(v.RegisterValidationCtx("https_live", isHTTPSForLive))
	return v
}

func mustRegister(err error) {
	if err != nil {
		panic(fmt.Sprintf("validation: register rule: %v", err))
	}
}

type httpsOnlyKey struct{}

// WithHTTPSOnly marks ctx so URL rules reject anything but https. Set for
// live accounts.
func WithHTTPSOnly(ctx context.Context, httpsOnly bool) context.Context {
	return context.WithValue(ctx, httpsOnlyKey{}, httpsOnly)
}

func isHTTPSForLive(ctx context.Context, fl validator.FieldLevel) bool {
	if on, _ := ctx.Value(httpsOnlyKey{}).(bool); !on {
		return true
	}
	u, err := url.Parse(fl.Field().String())
	return err == nil && u.Scheme == "https"
}

// isExpiryDate accepts MM/YY. Whether the card has expired is for the
// connector to decide.
func isExpiryDate(fl validator.FieldLevel) bool {
	return expiryDatePattern.MatchString(fl.Field().String())
}

// isPositiveInt accepts integers >= 1 written as a string. An optional param
// caps the value, e.g. positive_int=500.
func isPositiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Field().String())
	if err != nil || n < 1 {
		return false
	}
	if p := fl.Param(); p != "" {
		max, err := strconv.Atoi(p)
		return err == nil && n <= max
	}
	return true
}

// Check runs the validate tags of s and returns one error per failing field,
// in field declaration order. Nested structs report dotted paths such as
// "prefilled_cardholder_details.billing_address.city".
func Check(ctx context.Context, s any) []*Error {
	// Namespaces start with the struct's type name, which clients never see.
	prefix := reflect.Indirect(reflect.ValueOf(s)).Type().Name()
	if prefix != "" {
		prefix += "."
	}
	return translate(validate.StructCtx(ctx, s), func(fe validator.FieldError) string {
		return strings.TrimPrefix(fe.Namespace(), prefix)
	})
}

// Var runs tag against a single value reported as field.
func Var(ctx context.Context, field string, value any, tag string) *Error {
	errs := translate(validate.VarCtx(ctx, value, tag), func(validator.FieldError) string {
		return field
	})
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Valid reports whether value passes tag.
func Valid(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

func translate(err error, name func(validator.FieldError) string) []*Error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only returned for arguments that are not structs: a bug in the caller.
		panic(fmt.Sprintf("validation: %v", err))
	}

	out := make([]*Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, InvalidAttribute(name(fe), describe(fe)))
	}
	return out
}

func describe(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	if msg, ok := tagMessages[fe.ActualTag()]; ok {
		return msg
	}

	switch fe.ActualTag() {
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters length", fe.Param())
		}
		return "Must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be less than or equal to %s characters length", fe.Param())
		}
		return "Must be less than or equal to " + fe.Param()
	case "metadata":
		m, _ := fe.Value().(map[string]any)
		return strings.Join(metadataViolations(m), ". ")
	default:
		return "Must be a valid value"
	}
}
