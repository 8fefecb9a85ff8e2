// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package respond centralizes HTTP response writing for the SafeCampus API.

It enforces a consistent JSON envelope across all endpoints:

	{"data": ...}                  Success payloads
	{"data": ..., "meta": {...}}   Paginated collections
	{"error": ..., "code": ...}    Failures

Error Handling:

All handler errors funnel through [Error], which maps [apperr.AppError] values
to their HTTP status and logs unexpected (5xx) causes with the request-scoped
logger. Unknown error types are masked as 500 INTERNAL_ERROR so internal
details never reach the client.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/constants"
	"github.com/Sachin2501/safecampus/internal/platform/ctxutil"
	"github.com/Sachin2501/safecampus/pkg/pagination"
)

// envelope is the standard JSON response wrapper.
type envelope map[string]any

// JSON writes a raw JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent at this point. Nothing to do but log.
		slog.Error("respond_encode_failed", "error", err)
	}
}

// Data writes a success response wrapped in the {"data": ...} envelope.
func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, envelope{constants.FieldData: data})
}

// OK writes a 200 response wrapped in the data envelope.
func OK(w http.ResponseWriter, data any) {
	Data(w, http.StatusOK, data)
}

// Created writes a 201 response wrapped in the data envelope.
func Created(w http.ResponseWriter, data any) {
	Data(w, http.StatusCreated, data)
}

// Paginated writes a collection response with pagination metadata.
func Paginated(w http.ResponseWriter, status int, data any, meta pagination.Meta) {
	JSON(w, status, envelope{
		constants.FieldData: data,
		constants.FieldMeta: meta,
	})
}

// NoContent writes a 204 response with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error response, mapping [apperr.AppError] values to their
// HTTP status. Non-AppError values are masked as 500 INTERNAL_ERROR.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.As(err)
	if ae == nil {
		ae = apperr.Internal(err)
	}

	// Unexpected server faults get logged with their cause. Client errors
	// (4xx) are part of normal operation and stay at debug level.
	logger := ctxutil.GetLogger(r.Context())
	if ae.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request_failed",
			"code", ae.Code,
			"status", ae.HTTPStatus,
			"cause", ae.Cause,
		)
	} else {
		logger.Debug("request_rejected",
			"code", ae.Code,
			"status", ae.HTTPStatus,
		)
	}

	body := envelope{
		constants.FieldError: ae.Message,
		constants.FieldCode:  ae.Code,
	}
	if len(ae.Details) > 0 {
		body[constants.FieldDetails] = ae.Details
	}

	JSON(w, ae.HTTPStatus, body)
}
