// Package validation turns untrusted JSON into typed values. It holds the
// error model shared by every request shape, the per-type field parsers, and
// the semantic validators.
package validation

import (
	"fmt"
	"strings"
)

// Kind is the internal, stable token of a validation failure.
type Kind string

const (
	KindMissingMandatoryAttribute Kind = "missing_mandatory_attribute"
	KindInvalidAttributeValue     Kind = "invalid_attribute_value"
	KindUnableToParseJSON         Kind = "unable_to_parse_json"
	KindInvalidSearchParameters   Kind = "invalid_search_parameters"
)

// Error reports one offending field. Field is empty for document-level and
// search-parameter errors.
type Error struct {
	Code    Kind   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e Error) Error() string { return e.Message }

func MissingAttribute(field string) *Error {
	return &Error{
		Code:    KindMissingMandatoryAttribute,
		Field:   field,
		Message: "Missing mandatory attribute: " + field,
	}
}

func InvalidAttribute(field, description string) *Error {
	return &Error{
		Code:    KindInvalidAttributeValue,
		Field:   field,
		Message: fmt.Sprintf("Invalid attribute value: %s. %s", field, description),
	}
}

func UnableToParseJSON() *Error {
	return &Error{
		Code:    KindUnableToParseJSON,
		Message: "Unable to parse JSON",
	}
}

func InvalidSearchParameters(params []string) *Error {
	return &Error{
		Code: KindInvalidSearchParameters,
		Message: fmt.Sprintf(
			"Invalid parameters: %s. See Public API documentation for the correct data formats",
			strings.Join(params, ", "),
		),
	}
}

// Family maps the internal kinds to the public codes of one endpoint family.
// These codes are documented to API consumers.
type Family struct {
	Name    string
	missing string
	invalid string
	parse   string
	search  string
}

var (
	CreatePaymentFamily   = Family{Name: "create_payment", missing: "P0101", invalid: "P0102", parse: "P0197"}
	CreateRefundFamily    = Family{Name: "create_refund", missing: "P0601", invalid: "P0602", parse: "P0697"}
	AuthorisationFamily   = Family{Name: "authorisation", missing: "P1201", invalid: "P1202", parse: "P1297"}
	CreateAgreementFamily = Family{Name: "create_agreement", missing: "P2101", invalid: "P2102", parse: "P2197"}
	CreateMandateFamily   = Family{Name: "create_mandate", missing: "P2201", invalid: "P2202", parse: "P2297"}
	SearchPaymentsFamily  = Family{Name: "search_payments", search: "P0401"}
	SearchRefundsFamily   = Family{Name: "search_refunds", search: "P1101"}
)

// Code returns the public code for kind, or "" when the family never
// produces that kind.
func (f Family) Code(kind Kind) string {
	switch kind {
	case KindMissingMandatoryAttribute:
		return f.missing
	case KindInvalidAttributeValue:
		return f.invalid
	case KindUnableToParseJSON:
		return f.parse
	case KindInvalidSearchParameters:
		return f.search
	default:
		return ""
	}
}

// Report is the ordered list of errors from one deserialization attempt. A
// Report returned as an error is never empty.
type Report struct {
	Family Family
	Errors []Error
}

func NewReport(family Family, errs ...*Error) *Report {
	r := &Report{Family: family}
	for _, e := range errs {
		if e != nil {
			r.Errors = append(r.Errors, *e)
		}
	}
	return r
}

func (r *Report) Error() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

func (r *Report) Add(errs ...*Error) {
	for _, e := range errs {
		if e != nil {
			r.Errors = append(r.Errors, *e)
		}
	}
}

func (r *Report) Empty() bool { return len(r.Errors) == 0 }

// Err returns r as an error, or nil when nothing was reported.
func (r *Report) Err() error {
	if r.Empty() {
		return nil
	}
	return r
}

// First is the error rendered as the headline of a response.
func (r *Report) First() Error {
	return r.Errors[0]
}

// Fail builds a single-error report; used for fail-fast structural errors.
func Fail(family Family, e *Error) *Report {
	return NewReport(family, e)
}
