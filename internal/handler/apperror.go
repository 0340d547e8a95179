package handler

import (
	"errors"
	"net/http"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

const msgDownstream = "Downstream system error"

var (
	ErrUnauthorised    = &AppError{http.StatusUnauthorized, "P0920", "Credentials are required to access this service"}
	ErrRequestDenied   = &AppError{http.StatusForbidden, "P0920", "Request denied"}
	ErrTooManyRequests = &AppError{http.StatusTooManyRequests, "P0900", "Too many requests"}
	ErrInternalError   = &AppError{http.StatusInternalServerError, "P0999", "Something went wrong. Please try again later"}

	ErrCreatePaymentAccountNotLinked = &AppError{http.StatusForbidden, "P0199", "Account is not fully configured. Please refer to documentation to setup your account or contact support"}
	ErrCreatePaymentRejected         = &AppError{http.StatusUnprocessableEntity, "P0102", "Invalid attribute value. The payment provider rejected the request"}
	ErrCreatePaymentDownstream       = &AppError{http.StatusInternalServerError, "P0198", msgDownstream}

	ErrPaymentNotFound        = &AppError{http.StatusNotFound, "P0200", "Not found"}
	ErrGetPaymentDownstream   = &AppError{http.StatusInternalServerError, "P0298", msgDownstream}
	ErrEventsNotFound         = &AppError{http.StatusNotFound, "P0300", "Not found"}
	ErrEventsDownstream       = &AppError{http.StatusInternalServerError, "P0398", msgDownstream}
	ErrSearchPaymentsNotFound = &AppError{http.StatusNotFound, "P0402", "Page not found"}
	ErrSearchPaymentsFailed   = &AppError{http.StatusInternalServerError, "P0498", msgDownstream}

	ErrCancelNotFound   = &AppError{http.StatusNotFound, "P0500", "Not found"}
	ErrCancelConflict   = &AppError{http.StatusConflict, "P0501", "Cancellation of payment failed"}
	ErrCancelRejected   = &AppError{http.StatusBadRequest, "P0502", "Cancellation of payment failed"}
	ErrCancelDownstream = &AppError{http.StatusInternalServerError, "P0598", msgDownstream}

	ErrRefundPaymentNotFound   = &AppError{http.StatusNotFound, "P0600", "Not found"}
	ErrRefundNotAvailable      = &AppError{http.StatusBadRequest, "P0603", "The payment is not available for refund"}
	ErrRefundAmountMismatch    = &AppError{http.StatusPreconditionFailed, "P0604", "Refund amount available mismatch"}
	ErrCreateRefundDownstream  = &AppError{http.StatusInternalServerError, "P0698", msgDownstream}
	ErrRefundNotFound          = &AppError{http.StatusNotFound, "P0700", "Not found"}
	ErrGetRefundDownstream     = &AppError{http.StatusInternalServerError, "P0798", msgDownstream}
	ErrRefundsNotFound         = &AppError{http.StatusNotFound, "P0800", "Not found"}
	ErrListRefundsDownstream   = &AppError{http.StatusInternalServerError, "P0898", msgDownstream}
	ErrSearchRefundsNotFound   = &AppError{http.StatusNotFound, "P1100", "Page not found"}
	ErrSearchRefundsDownstream = &AppError{http.StatusInternalServerError, "P1198", msgDownstream}

	ErrCaptureNotFound   = &AppError{http.StatusNotFound, "P1000", "Not found"}
	ErrCaptureConflict   = &AppError{http.StatusConflict, "P1001", "Capture of payment failed"}
	ErrCaptureRejected   = &AppError{http.StatusBadRequest, "P1003", "Payment cannot be captured"}
	ErrCaptureDownstream = &AppError{http.StatusInternalServerError, "P1098", msgDownstream}

	ErrAuthorisationRejected   = &AppError{http.StatusPaymentRequired, "P1200", "There was an error authorising the payment"}
	ErrAuthorisationDownstream = &AppError{http.StatusInternalServerError, "P1298", msgDownstream}

	ErrAgreementRejected   = &AppError{http.StatusUnprocessableEntity, "P2100", "Agreement could not be created"}
	ErrAgreementDownstream = &AppError{http.StatusInternalServerError, "P2198", msgDownstream}
	ErrMandateRejected     = &AppError{http.StatusUnprocessableEntity, "P2200", "Mandate could not be created"}
	ErrMandateDownstream   = &AppError{http.StatusInternalServerError, "P2298", msgDownstream}
)

type errorCase struct {
	target error
	appErr *AppError
}

// errorTable maps the failures of one endpoint to its public codes. Cases
// are tried in order; anything unmatched gets fallback.
type errorTable struct {
	cases    []errorCase
	fallback *AppError
}

func (t errorTable) resolve(err error) *AppError {
	for _, c := range t.cases {
		if errors.Is(err, c.target) {
			return c.appErr
		}
	}
	return t.fallback
}

var (
	createPaymentErrors = errorTable{
		cases: []errorCase{
			{domain.ErrAccountNotLinked, ErrCreatePaymentAccountNotLinked},
			{domain.ErrBackendValidation, ErrCreatePaymentRejected},
		},
		fallback: ErrCreatePaymentDownstream,
	}
	getPaymentErrors = errorTable{
		cases:    []errorCase{{domain.ErrNotFound, ErrPaymentNotFound}},
		fallback: ErrGetPaymentDownstream,
	}
	getEventsErrors = errorTable{
		cases:    []errorCase{{domain.ErrNotFound, ErrEventsNotFound}},
		fallback: ErrEventsDownstream,
	}
	searchPaymentsErrors = errorTable{
		cases:    []errorCase{{domain.ErrNotFound, ErrSearchPaymentsNotFound}},
		fallback: ErrSearchPaymentsFailed,
	}
	cancelErrors = errorTable{
		cases: []errorCase{
			{domain.ErrNotFound, ErrCancelNotFound},
			{domain.ErrConflict, ErrCancelConflict},
			{domain.ErrBackendValidation, ErrCancelRejected},
		},
		fallback: ErrCancelDownstream,
	}
	captureErrors = errorTable{
		cases: []errorCase{
			{domain.ErrNotFound, ErrCaptureNotFound},
			{domain.ErrConflict, ErrCaptureConflict},
			{domain.ErrBackendValidation, ErrCaptureRejected},
		},
		fallback: ErrCaptureDownstream,
	}
	createRefundErrors = errorTable{
		cases: []errorCase{
			{domain.ErrNotFound, ErrRefundPaymentNotFound},
			{domain.ErrRefundNotAvailable, ErrRefundNotAvailable},
			{domain.ErrRefundAmountMismatch, ErrRefundAmountMismatch},
		},
		fallback: ErrCreateRefundDownstream,
	}
	getRefundErrors = errorTable{
		cases:    []errorCase{{domain.ErrNotFound, ErrRefundNotFound}},
		fallback: ErrGetRefundDownstream,
	}
	listRefundsErrors = errorTable{
		cases:    []errorCase{{domain.ErrNotFound, ErrRefundsNotFound}},
		fallback: ErrListRefundsDownstream,
	}
	searchRefundsErrors = errorTable{
		cases:    []errorCase{{domain.ErrNotFound, ErrSearchRefundsNotFound}},
		fallback: ErrSearchRefundsDownstream,
	}
	authoriseErrors = errorTable{
		cases:    []errorCase{{domain.ErrBackendValidation, ErrAuthorisationRejected}},
		fallback: ErrAuthorisationDownstream,
	}
	createAgreementErrors = errorTable{
		cases:    []errorCase{{domain.ErrBackendValidation, ErrAgreementRejected}},
		fallback: ErrAgreementDownstream,
	}
	createMandateErrors = errorTable{
		cases: []errorCase{
			{domain.ErrTokenTypeNotAllowed, ErrRequestDenied},
			{domain.ErrBackendValidation, ErrMandateRejected},
		},
		fallback: ErrMandateDownstream,
	}
)
