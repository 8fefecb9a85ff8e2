// Copyright (c) 2026 SafeCampus. All rights reserved.

package sos

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sachin2501/safecampus/internal/platform/middleware"
	requestutil "github.com/Sachin2501/safecampus/internal/platform/request"
	"github.com/Sachin2501/safecampus/internal/platform/respond"
	"github.com/Sachin2501/safecampus/internal/platform/validate"
	"github.com/Sachin2501/safecampus/pkg/pagination"
)

// Handler implements SOS HTTP endpoints.
type Handler struct {
	sosService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{sosService: service}
}

// Routes returns a [chi.Router] with SOS routes, all session-protected.
//
// # Endpoints
//   - POST / : Triggers an SOS activation.
//   - GET  / : The member's own activation history.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.activate)
	router.Get("/", handler.history)

	return router
}

type activateRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
	Note     string  `json:"note"`
}

/*
Activate triggers an SOS activation for the signed-in member.

POST /api/v1/sos

Description: An absent or zero location falls back to the campus center.

Response:
  - 201: Receipt: Activation and notified recipients
  - 400: ErrInvalidJSON: Malformed coordinates
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// An SOS with no body at all is valid: the location falls back.
	input := activateRequest{}
	if request.ContentLength > 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	validator := &validate.Validator{}
	validator.Custom("lat", input.Lat < -90 || input.Lat > 90, "Must be between -90 and 90").
		Custom("lng", input.Lng < -180 || input.Lng > 180, "Must be between -180 and 180").
		Custom("accuracy", input.Accuracy < 0, "Must be non-negative").
		MaxLen("note", input.Note, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, err := handler.sosService.Activate(request.Context(), claims, ActivateInput{
		Lat:      input.Lat,
		Lng:      input.Lng,
		Accuracy: input.Accuracy,
		Note:     input.Note,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, receipt)
}

/*
History returns the member's own activations newest-first.

GET /api/v1/sos?page=&limit=

Response:
  - 200: []Activation with pagination metadata
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	activations, meta, err := handler.sosService.History(request.Context(), claims, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, http.StatusOK, activations, meta)
}
