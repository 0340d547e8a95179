package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josh-kwaku/pay-publicapi/internal/logging"
	"github.com/josh-kwaku/pay-publicapi/internal/observability"
	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ValidationDetail is one entry of a validation failure's details.
type ValidationDetail struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

// RespondValidationReport renders every error of report. The headline is
// the first error; structural failures are 400, rejected values 422.
func RespondValidationReport(w http.ResponseWriter, report *validation.Report) {
	details := make([]ValidationDetail, len(report.Errors))
	for i, e := range report.Errors {
		details[i] = ValidationDetail{
			Code:    report.Family.Code(e.Code),
			Field:   e.Field,
			Message: e.Message,
		}
	}

	first := report.First()
	status := http.StatusUnprocessableEntity
	if first.Code == validation.KindMissingMandatoryAttribute || first.Code == validation.KindUnableToParseJSON {
		status = http.StatusBadRequest
	}

	observability.ValidationFailures.WithLabelValues(details[0].Code).Inc()
	RespondAppError(w, &AppError{Status: status, Code: details[0].Code, Message: first.Message}, details)
}

// respondError renders err through table, or as a validation report when
// it is one.
func respondError(w http.ResponseWriter, r *http.Request, table errorTable, err error) {
	var report *validation.Report
	if errors.As(err, &report) {
		RespondValidationReport(w, report)
		return
	}

	appErr := table.resolve(err)
	log := logging.FromContext(r.Context())
	if appErr.Status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err, "code", appErr.Code)
	} else {
		log.Warn("request rejected", "error", err, "code", appErr.Code)
	}
	RespondAppError(w, appErr, nil)
}
