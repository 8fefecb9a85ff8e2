// Copyright (c) 2026 SafeCampus. All rights reserved.

// Authentication and authorization middleware for the SafeCampus API.
//
// # Architecture
//
// Authentication resolves the bearer token to a live session snapshot via the
// session manager; authorization then gates handlers on the session's role.
// Session state lives in Redis, so a verified token alone is never enough:
// a logged-out or lazily-expired session fails resolution even if the token
// signature is still valid.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/ctxutil"
	"github.com/Sachin2501/safecampus/internal/platform/respond"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
)

// SessionResolver defines the behavior needed to turn a bearer token into
// live session claims.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the auth
// service implementation, allowing us to easily inject mocks during unit testing.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*sec.SessionClaims, error)
}

// Authenticate extracts the bearer token and resolves it to session claims.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the token and load the session snapshot.
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// A malformed header is a hard 401; a token that fails resolution (expired or
// destroyed session) degrades to anonymous so that read endpoints can report
// "no active session" instead of erroring.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// 1. Anonymous access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format validation
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// 3. Session resolution. Failure means no usable session, which
			// downstream handlers treat the same as anonymity.
			claims, err := resolver.Resolve(request.Context(), parts[1])
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Context injection
			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that carry no active session.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetSession(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("No active session"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireBroadcast blocks alert broadcasting for roles outside the response
// chain. This is membership, not hierarchy: admin is above security in the
// role order but still cannot broadcast.
func RequireBroadcast(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetSession(request.Context())

		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("No active session"))
			return
		}

		if !claims.Role.CanBroadcast() {
			respond.Error(writer, request, apperr.Forbidden("Only security and staff can send alerts"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
