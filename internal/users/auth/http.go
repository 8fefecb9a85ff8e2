// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/Sachin2501/safecampus/internal/platform/request"
	"github.com/Sachin2501/safecampus/internal/platform/respond"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup  : Creates a new account and signs it in.
//   - POST /login   : Authenticates and returns a session token.
//   - POST /logout  : Destroys the current session (idempotent).
//   - GET  /session : Returns the current session state.
//
// Logout and session are deliberately NOT behind RequireAuth: an anonymous
// logout is a successful no-op and an anonymous session read is a clean 401.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/session", handler.session)

	return router
}

// # Request & Response Payloads

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// sessionResponse is the transport shape of an established session.
type sessionResponse struct {
	Token            string   `json:"token,omitempty"`
	User             Identity `json:"user"`
	RememberMe       bool     `json:"remember_me"`
	ExpiresAtEpochMs int64    `json:"expires_at_epoch_ms"`
	CreatedAtEpochMs int64    `json:"created_at_epoch_ms"`
}

// newSessionResponse maps a session (and optional fresh token) to transport form.
func newSessionResponse(session *Session, token string) sessionResponse {
	return sessionResponse{
		Token:            token,
		User:             session.User,
		RememberMe:       session.RememberMe,
		ExpiresAtEpochMs: session.ExpiresAt.UnixMilli(),
		CreatedAtEpochMs: session.CreatedAt.UnixMilli(),
	}
}

/*
Signup handles enrollment of a new campus member.

POST /api/v1/auth/signup

Description: Validates input, checks for email conflicts, persists the
identity, and returns a standard 2 hour session.

Request:
  - Body: signupRequest (Name, Email, Phone, Password, Role)

Response:
  - 201: sessionResponse: New session with bearer token
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPhone, input.Phone, MaxPhoneLength)

	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, sec.RoleNames()...)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Signup(request.Context(), SignupInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		Role:     sec.Role(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newSessionResponse(result.Session, result.Token))
}

/*
Login authenticates a member and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials and returns a signed session token. The
rememberMe flag extends the session from 2 hours to 30 days.

Request:
  - Body: loginRequest (Email, Password, RememberMe)

Response:
  - 200: sessionResponse: Session with bearer token
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:      input.Email,
		Password:   input.Password,
		RememberMe: input.RememberMe,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(result.Session, result.Token))
}

/*
Logout destroys the current session.

POST /api/v1/auth/logout

Description: Idempotent. Succeeds whether or not a session is active.

Response:
  - 204: No Content: Session destroyed (or none existed)
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Session(request)

	if err := handler.authService.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Session returns the current session state.

GET /api/v1/auth/session

Description: The token field is omitted; the client already holds it. Lazy
expiry applies: reading an expired session deletes it and reports 401.

Response:
  - 200: sessionResponse: Live session snapshot
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.authService.CurrentSession(request.Context(), requestutil.Session(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session, ""))
}
