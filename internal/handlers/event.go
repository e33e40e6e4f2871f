// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/middleware"
	"github.com/planora/planora/internal/models"
	"github.com/planora/planora/internal/validate"
)

// ListEvents returns all upcoming events.
func (h *Handlers) ListEvents(c echo.Context) error {
	events, err := h.events.ListUpcoming(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	views := make([]models.EventView, len(events))
	for i := range events {
		views[i] = events[i].View()
	}
	return c.JSON(http.StatusOK, views)
}

// CreateEvent stores a new event for the authenticated organizer.
func (h *Handlers) CreateEvent(c echo.Context) error {
	var in validate.EventInput
	if err := c.Bind(&in); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	event, err := h.events.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return failEvent(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "event created successfully",
		"event":   event.View(),
	})
}

// GetEvent returns a single event by id.
func (h *Handlers) GetEvent(c echo.Context) error {
	id := c.Param("eventId")
	if !models.IsValidID(id) {
		return message(c, http.StatusBadRequest, "invalid event id")
	}

	event, err := h.events.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, event.View())
}

// UpdateEvent applies a partial patch to an event owned by the organizer.
func (h *Handlers) UpdateEvent(c echo.Context) error {
	id := c.Param("eventId")
	if !models.IsValidID(id) {
		return message(c, http.StatusBadRequest, "invalid event id")
	}

	// Bind the body only. A full Bind would merge the eventId path
	// parameter into the patch map and fail the unknown-field check.
	patch := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &patch); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	event, err := h.events.Update(c.Request().Context(), id, middleware.UserID(c), patch)
	if err != nil {
		return failEvent(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "event updated successfully",
		"event":   event.View(),
	})
}

// DeleteEvent removes an event owned by the organizer.
func (h *Handlers) DeleteEvent(c echo.Context) error {
	id := c.Param("eventId")
	if !models.IsValidID(id) {
		return message(c, http.StatusBadRequest, "invalid event id")
	}

	if err := h.events.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "event deleted successfully")
}
