// Copyright (c) 2026 SafeCampus. All rights reserved.

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sachin2501/safecampus/internal/platform/middleware"
	requestutil "github.com/Sachin2501/safecampus/internal/platform/request"
	"github.com/Sachin2501/safecampus/internal/platform/respond"
)

// Handler implements profile management HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] with profile routes, all session-protected.
//
// # Endpoints
//   - PUT    /                    : Updates name and phone.
//   - POST   /contacts            : Adds an emergency contact.
//   - DELETE /contacts/{idOrName} : Removes a contact (idempotent).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Put("/", handler.update)
	router.Post("/contacts", handler.addContact)
	router.Delete("/contacts/{idOrName}", handler.removeContact)

	return router
}

type updateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type contactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

/*
Update replaces the member's profile fields.

PUT /api/v1/profile

Response:
  - 200: Identity: Updated, redacted profile
  - 400: ErrInvalidJSON: Missing name or phone
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.profileService.UpdateProfile(request.Context(), claims, UpdateInput{
		Name:  input.Name,
		Phone: input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}

/*
AddContact appends an emergency contact.

POST /api/v1/profile/contacts

Response:
  - 201: EmergencyContact: Stored contact with assigned ID
  - 400: ErrInvalidJSON: Missing fields
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) addContact(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.profileService.AddContact(request.Context(), claims, ContactInput{
		Name:         input.Name,
		Phone:        input.Phone,
		Relationship: input.Relationship,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, contact)
}

/*
RemoveContact removes a contact by ID or name.

DELETE /api/v1/profile/contacts/{idOrName}

Response:
  - 204: No Content: Contact removed (or was never there)
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) removeContact(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	idOrName := requestutil.Param(request, "idOrName")

	if err := handler.profileService.RemoveContact(request.Context(), claims, idOrName); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
