package validation

import (
	"github.com/josh-kwaku/pay-publicapi/internal/jsonvalue"
)

const (
	msgString  = "Must be a valid string format"
	msgNumeric = "Must be a valid numeric format"
	msgBoolean = "Must be true or false"
	msgObject  = "Must be a valid JSON object"
	msgArray   = "Must be a valid JSON array"
)

// Option adjusts how a single field is parsed.
type Option func(*fieldOptions)

type fieldOptions struct {
	typeMessage string
}

// WithTypeMessage replaces the generic wrong-type description, e.g. "Must be
// a valid URL format" for a URL held in a string.
func WithTypeMessage(description string) Option {
	return func(o *fieldOptions) { o.typeMessage = description }
}

func resolve(defaultMsg string, opts []Option) string {
	o := fieldOptions{typeMessage: defaultMsg}
	for _, opt := range opts {
		opt(&o)
	}
	return o.typeMessage
}

// Object reads named fields out of a JSON object. Nested objects carry their
// parent's path so errors name the full field, e.g.
// "prefilled_cardholder_details.billing_address.line1".
type Object struct {
	value  jsonvalue.Value
	prefix string
}

func NewObject(v jsonvalue.Value) Object {
	return Object{value: v}
}

// Path returns the reported name of a field of o.
func (o Object) Path(name string) string {
	if o.prefix == "" {
		return name
	}
	return o.prefix + "." + name
}

// Has reports whether name is present and not null.
func (o Object) Has(name string) bool {
	v, ok := o.value.Field(name)
	return ok && !v.IsNull()
}

// Raw returns the field's value; ok is false when absent or null.
func (o Object) Raw(name string) (jsonvalue.Value, bool) {
	v, ok := o.value.Field(name)
	if !ok || v.IsNull() {
		return jsonvalue.Value{}, false
	}
	return v, true
}

func (o Object) RequiredString(name string, opts ...Option) (string, *Error) {
	v, ok := o.Raw(name)
	if !ok {
		return "", MissingAttribute(o.Path(name))
	}
	s, ok := v.String()
	if !ok {
		return "", InvalidAttribute(o.Path(name), resolve(msgString, opts))
	}
	return s, nil
}

func (o Object) OptionalString(name string, opts ...Option) (*string, *Error) {
	if !o.Has(name) {
		return nil, nil
	}
	s, err := o.RequiredString(name, opts...)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (o Object) RequiredInt(name string, opts ...Option) (int64, *Error) {
	v, ok := o.Raw(name)
	if !ok {
		return 0, MissingAttribute(o.Path(name))
	}
	n, ok := v.Int64()
	if !ok {
		return 0, InvalidAttribute(o.Path(name), resolve(msgNumeric, opts))
	}
	return n, nil
}

func (o Object) OptionalInt(name string, opts ...Option) (*int64, *Error) {
	if !o.Has(name) {
		return nil, nil
	}
	n, err := o.RequiredInt(name, opts...)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (o Object) RequiredBool(name string, opts ...Option) (bool, *Error) {
	v, ok := o.Raw(name)
	if !ok {
		return false, MissingAttribute(o.Path(name))
	}
	b, ok := v.Bool()
	if !ok {
		return false, InvalidAttribute(o.Path(name), resolve(msgBoolean, opts))
	}
	return b, nil
}

func (o Object) OptionalBool(name string, opts ...Option) (*bool, *Error) {
	if !o.Has(name) {
		return nil, nil
	}
	b, err := o.RequiredBool(name, opts...)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// RequiredObject returns the nested object scoped under o's path.
func (o Object) RequiredObject(name string, opts ...Option) (Object, *Error) {
	v, ok := o.Raw(name)
	if !ok {
		return Object{}, MissingAttribute(o.Path(name))
	}
	if !v.IsObject() {
		return Object{}, InvalidAttribute(o.Path(name), resolve(msgObject, opts))
	}
	return Object{value: v, prefix: o.Path(name)}, nil
}

func (o Object) OptionalObject(name string, opts ...Option) (*Object, *Error) {
	if !o.Has(name) {
		return nil, nil
	}
	child, err := o.RequiredObject(name, opts...)
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (o Object) RequiredArray(name string, opts ...Option) ([]jsonvalue.Value, *Error) {
	v, ok := o.Raw(name)
	if !ok {
		return nil, MissingAttribute(o.Path(name))
	}
	if v.Kind() != jsonvalue.Array {
		return nil, InvalidAttribute(o.Path(name), resolve(msgArray, opts))
	}
	return v.Items(), nil
}

// Value exposes the underlying JSON object.
func (o Object) Value() jsonvalue.Value { return o.value }

// ParseDocument parses body as a JSON object. Anything else, including an
// empty body or a top-level array, is reported as unparseable.
func ParseDocument(body []byte) (Object, *Error) {
	v, err := jsonvalue.Parse(body)
	if err != nil || !v.IsObject() {
		return Object{}, UnableToParseJSON()
	}
	return NewObject(v), nil
}
