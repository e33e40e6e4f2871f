// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/services/account"
	"github.com/planora/planora/internal/services/event"
	"github.com/planora/planora/internal/token"
	"github.com/planora/planora/internal/validate"
)

// fail maps a service error onto the `{message}` response shape used by the
// user endpoints. Unexpected errors become a generic 500 and are logged.
func fail(c echo.Context, err error) error {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		return message(c, http.StatusBadRequest, verrs.First())
	}

	switch {
	case errors.Is(err, account.ErrUserExists):
		return message(c, http.StatusBadRequest, "user already exists")
	case errors.Is(err, account.ErrAlreadyVerified):
		return message(c, http.StatusBadRequest, "email is already verified")
	case errors.Is(err, account.ErrInvalidCredentials):
		return message(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, account.ErrUserNotFound):
		return message(c, http.StatusNotFound, "user not found")
	case errors.Is(err, token.ErrTokenExpired):
		return message(c, http.StatusBadRequest, "token expired")
	case errors.Is(err, token.ErrInvalidToken):
		return message(c, http.StatusBadRequest, "invalid token")
	case errors.Is(err, event.ErrEventExists):
		return message(c, http.StatusBadRequest, "event already exists")
	case errors.Is(err, event.ErrEventNotFound):
		return message(c, http.StatusNotFound, "event not found")
	case errors.Is(err, event.ErrNoEvents):
		return message(c, http.StatusNotFound, "no upcoming events found")
	}

	slog.Error("request failed", "error", err, "path", c.Path())
	return message(c, http.StatusInternalServerError, "internal server error")
}

// failEvent maps errors for the event mutation endpoints, which report
// validation failures as a field-tagged `{errors}` array instead of a
// single message. This shape difference is kept per endpoint for
// compatibility with existing clients.
func failEvent(c echo.Context, err error) error {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": verrs})
	}
	return fail(c, err)
}
