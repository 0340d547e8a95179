package validation

import (
	"encoding/json"
	"slices"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MaxMetadataPairs       = 10
	MinMetadataKeyLength   = 1
	MaxMetadataKeyLength   = 30
	MaxMetadataValueLength = 50

	MsgMetadataObject      = "Must be an object of JSON key-value pairs"
	MsgMetadataTooMany     = "Cannot have more than 10 key-value pairs"
	MsgMetadataValueType   = "Values must be of type String, Boolean or Number"
	MsgMetadataKeyLength   = "Keys must be between 1 and 30 characters"
	MsgMetadataValueLength = "Values must be no greater than 50 characters long"
)

// isMetadata checks an object of key-value pairs. Every violation found
// across all keys is folded into one error by describe. Sentences appear at
// most once, in this order: pair count, value type, key length, value length.
func isMetadata(fl validator.FieldLevel) bool {
	m, ok := fl.Field().Interface().(map[string]any)
	return ok && len(metadataViolations(m)) == 0
}

func metadataViolations(m map[string]any) []string {
	var tooMany, badType, badKey, longValue bool
	if len(m) > MaxMetadataPairs {
		tooMany = true
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if n := utf8.RuneCountInString(k); n < MinMetadataKeyLength || n > MaxMetadataKeyLength {
			badKey = true
		}
		switch v := m[k].(type) {
		case string:
			if utf8.RuneCountInString(v) > MaxMetadataValueLength {
				longValue = true
			}
		case bool, json.Number, float64, int64:
		default:
			badType = true
		}
	}

	var sentences []string
	if tooMany {
		sentences = append(sentences, MsgMetadataTooMany)
	}
	if badType {
		sentences = append(sentences, MsgMetadataValueType)
	}
	if badKey {
		sentences = append(sentences, MsgMetadataKeyLength)
	}
	if longValue {
		sentences = append(sentences, MsgMetadataValueLength)
	}
	return sentences
}
