// Copyright (c) 2026 SafeCampus. All rights reserved.

package alert

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/middleware"
	requestutil "github.com/Sachin2501/safecampus/internal/platform/request"
	"github.com/Sachin2501/safecampus/internal/platform/respond"
	"github.com/Sachin2501/safecampus/internal/platform/validate"
	"github.com/Sachin2501/safecampus/pkg/pagination"
)

// Handler implements broadcast alert HTTP endpoints.
type Handler struct {
	alertService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{alertService: service}
}

// Routes returns a [chi.Router] with alert routes.
//
// # Endpoints
//   - POST   /        : Broadcasts an alert (security/staff only).
//   - GET    /        : Alert history (any signed-in member).
//   - GET    /active  : Current banner (anonymous allowed).
//   - DELETE /active  : Takes down the banner (security/staff only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/active", handler.activeBanner)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.history)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireBroadcast)
		r.Post("/", handler.broadcast)
		r.Delete("/active", handler.closeBanner)
	})

	return router
}

type broadcastRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

/*
Broadcast sends a campus-wide alert.

POST /api/v1/alerts

Response:
  - 201: Receipt: Stored alert and recipient count
  - 400: ErrInvalidJSON: Missing title or message
  - 401: ErrUnauthorized: No active session
  - 403: ErrForbidden: Role outside the response chain
*/
func (handler *Handler) broadcast(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input broadcastRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("message", input.Message).
		MaxLen("message", input.Message, 2000)

	if input.Type != "" {
		validator.OneOf("type", input.Type, TypeNames()...)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, err := handler.alertService.Broadcast(request.Context(), claims, BroadcastInput{
		Type:    Type(input.Type),
		Title:   input.Title,
		Message: input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, receipt)
}

/*
History returns broadcast alerts newest-first.

GET /api/v1/alerts?page=&limit=

Response:
  - 200: []Alert with pagination metadata
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	alerts, meta, err := handler.alertService.History(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, http.StatusOK, alerts, meta)
}

/*
ActiveBanner returns the current campus banner.

GET /api/v1/alerts/active

Description: Anonymous allowed; the banner is shown to everyone on campus.

Response:
  - 200: Alert: Active banner
  - 204: No Content: No banner is up
*/
func (handler *Handler) activeBanner(writer http.ResponseWriter, request *http.Request) {
	banner, err := handler.alertService.ActiveBanner(request.Context())
	if err != nil {
		if apperr.IsNotFound(err) {
			respond.NoContent(writer)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, banner)
}

/*
CloseBanner takes down the active banner.

DELETE /api/v1/alerts/active

Response:
  - 204: No Content: Banner cleared (or none was up)
  - 403: ErrForbidden: Role outside the response chain
*/
func (handler *Handler) closeBanner(writer http.ResponseWriter, request *http.Request) {
	if err := handler.alertService.CloseBanner(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
