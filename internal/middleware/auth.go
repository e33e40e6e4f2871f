// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides the bearer-token gatekeeper for protected
// routes.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/token"
)

// Context keys set by RequireAuth.
const (
	// UserIDKey holds the authenticated user's id.
	UserIDKey = "user_id"
	// TokenKey holds the raw bearer token, needed for logout revocation.
	TokenKey = "auth_token"
)

// RevocationChecker reports whether a token has been revoked.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tok string) (bool, error)
}

// RequireAuth resolves the request identity from the Authorization header.
// Revoked, malformed and expired tokens are rejected before the handler
// runs; on success the user id and raw token are attached to the context.
func RequireAuth(tokens *token.Service, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearer, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			}

			isRevoked, err := revoked.IsTokenRevoked(c.Request().Context(), bearer)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal server error"})
			}
			if isRevoked {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "token is blacklisted"})
			}

			claims, err := tokens.Verify(bearer, token.PurposeSession)
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"message": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(TokenKey, bearer)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// Token returns the raw bearer token set by RequireAuth.
func Token(c echo.Context) string {
	tok, _ := c.Get(TokenKey).(string)
	return tok
}
