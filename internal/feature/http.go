// Copyright (c) 2026 SafeCampus. All rights reserved.

package feature

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Sachin2501/safecampus/internal/platform/request"
	"github.com/Sachin2501/safecampus/internal/platform/respond"
)

// Handler serves feature grants for the current session.
type Handler struct{}

// NewHandler constructs a new [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] with the feature routes.
//
// # Endpoints
//   - GET / : Grants for the current session (anonymous allowed).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.grants)
	return router
}

/*
Grants returns the affordances for the caller's session.

GET /api/v1/features

Response:
  - 200: Grants: Decision per affordance, with reasons for denials
*/
func (handler *Handler) grants(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, ForSession(requestutil.Session(request)))
}
