// Copyright (c) 2026 SafeCampus. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLength is the minimum byte length accepted for the HMAC secret.
const minSecretLength = 32

// sessionTokenClaims is the payload embedded inside a session bearer token.
//
// # Why only the session ID?
//
// The token is a tamper-proof reference, not a data carrier. The authoritative
// session state (identity snapshot, expiry) lives in the session store, so a
// profile edit is visible immediately without re-issuing the token.
type sessionTokenClaims struct {
	jwt.RegisteredClaims

	SessionID string `json:"sid"`
}

// TokenService handles generation and verification of session bearer tokens
// using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from a shared HMAC secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("sec: session secret must be at least %d bytes", minSecretLength)
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateSessionToken creates a signed bearer token referencing a session.
//
// The token expiry mirrors the session expiry set at login: it is never
// extended by a refresh, matching the session lifecycle contract.
func (service *TokenService) GenerateSessionToken(sessionID string, expiresAt time.Time) (string, error) {
	currentTime := time.Now()
	claims := sessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifySessionToken checks the signature of a bearer token and returns the
// session ID it references.
//
// An expired exp claim is tolerated: the session store is the authority on
// expiry, and the session manager must still be able to locate an expired
// snapshot in order to clean it up on read. A tampered signature or any
// other claim failure still rejects the token.
func (service *TokenService) VerifySessionToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return "", fmt.Errorf("sec: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionTokenClaims)
	if !ok || claims.SessionID == "" {
		return "", fmt.Errorf("sec: invalid session token claims")
	}

	return claims.SessionID, nil
}
