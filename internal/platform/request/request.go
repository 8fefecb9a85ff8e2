// Copyright (c) 2026 SafeCampus. All rights reserved.

// Package request provides helpers for parsing incoming HTTP requests.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/ctxutil"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/internal/platform/validate"
)

// maxBodyBytes caps request bodies at 1 MiB to guard against abuse.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst.
//
// It enforces a body size limit and rejects unknown fields so that client
// typos surface as 400s instead of silently dropped data.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationError("Request body is required")
		}
		return validate.ErrInvalidJSON
	}

	// A second decode must hit EOF, otherwise the body held trailing garbage.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}

	return nil
}

// Param returns the named chi URL parameter.
func Param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// Session returns the resolved session claims, or nil for anonymous requests.
//
// Use this on endpoints where anonymity is acceptable (stats hooks degrade
// to no-ops without a session).
func Session(r *http.Request) *sec.SessionClaims {
	return ctxutil.GetSession(r.Context())
}

// RequiredSession returns the session claims or a 401 [apperr.AppError] if
// the request is anonymous.
func RequiredSession(r *http.Request) (*sec.SessionClaims, error) {
	claims := ctxutil.GetSession(r.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("No active session")
	}
	return claims, nil
}
