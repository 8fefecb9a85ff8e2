// Copyright (c) 2026 SafeCampus. All rights reserved.

package directory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sachin2501/safecampus/internal/platform/respond"
)

// Handler serves the emergency services directory.
type Handler struct{}

// NewHandler constructs a new [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a [chi.Router] with the directory routes.
//
// # Endpoints
//   - GET / : The roster (anonymous allowed; emergencies don't sign in first).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	return router
}

/*
List returns the campus emergency services roster.

GET /api/v1/directory

Response:
  - 200: []Entry: The roster in display order
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Entries())
}
