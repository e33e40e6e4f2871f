// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers maps the HTTP surface onto the account and event
// services.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/services/account"
	"github.com/planora/planora/internal/services/event"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	accounts *account.Service
	events   *event.Service
}

// New creates a new Handlers instance.
func New(accounts *account.Service, events *event.Service) *Handlers {
	return &Handlers{accounts: accounts, events: events}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}
