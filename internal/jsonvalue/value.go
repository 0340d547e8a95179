// Package jsonvalue holds a parsed JSON document as a tree of tagged values,
// so request fields can be inspected for presence and JSON type before they
// are converted to Go types.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of a JSON document. The zero Value is JSON null.
type Value struct {
	kind   Kind
	b      bool
	num    json.Number
	str    string
	items  []Value
	fields map[string]Value
	keys   []string
}

var ErrTrailingData = errors.New("unexpected data after top-level value")

// Parse decodes a complete JSON document. Object keys keep their first-seen
// order; a repeated key overwrites the earlier value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("Parse: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("Parse: %w", ErrTrailingData)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Value{kind: Null}, nil
	case bool:
		return Value{kind: Bool, b: t}, nil
	case json.Number:
		return Value{kind: Number, num: t}, nil
	case string:
		return Value{kind: String, str: t}, nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{kind: Object, fields: map[string]Value{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		child, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		if _, seen := v.fields[key]; !seen {
			v.keys = append(v.keys, key)
		}
		v.fields[key] = child
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{kind: Array}
	for dec.More() {
		child, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.items = append(v.items, child)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsObject() bool { return v.kind == Object }

// Field returns the named member of an object. ok is false when v is not an
// object or the member is absent.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	f, ok := v.fields[name]
	return f, ok
}

// Keys returns object member names in document order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Len is the number of members of an object or items of an array.
func (v Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.keys)
	case Array:
		return len(v.items)
	default:
		return 0
	}
}

func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

func (v Value) String() (string, bool) {
	return v.str, v.kind == String
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == Bool
}

func (v Value) Number() (json.Number, bool) {
	return v.num, v.kind == Number
}

// Int64 returns the value as an integer. Fractional and exponent forms are
// rejected. Integers beyond the int64 range saturate to its bounds, so range
// checks downstream report them as too large or too small.
func (v Value) Int64() (int64, bool) {
	if v.kind != Number {
		return 0, false
	}
	n, err := v.num.Int64()
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}

// Scalar converts a string, boolean or number to its Go form (string, bool,
// json.Number). ok is false for null, arrays and objects.
func (v Value) Scalar() (any, bool) {
	switch v.kind {
	case String:
		return v.str, true
	case Bool:
		return v.b, true
	case Number:
		return v.num, true
	default:
		return nil, false
	}
}

// Interface converts v to plain Go values: nil, bool, json.Number, string,
// []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].Interface()
		}
		return out
	default:
		return nil
	}
}
