package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrBackendValidation    = errors.New("backend rejected request")
	ErrConflict             = errors.New("conflict")
	ErrRefundNotAvailable   = errors.New("refund not available")
	ErrRefundAmountMismatch = errors.New("refund amount available mismatch")
	ErrAccountNotLinked     = errors.New("account not linked with payment provider")
	ErrTokenTypeNotAllowed  = errors.New("operation not available for this token type")
)
