// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package event implements the event scheduling workflows.
package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/planora/planora/internal/models"
	"github.com/planora/planora/internal/repository"
	"github.com/planora/planora/internal/validate"
)

var (
	ErrEventExists   = errors.New("event already exists")
	ErrEventNotFound = errors.New("event not found")
	ErrNoEvents      = errors.New("no upcoming events")
)

// Service implements event creation, listing, update and deletion. Edit and
// delete rights belong exclusively to the organizer.
type Service struct {
	repo *repository.Repository
}

// NewService creates an event service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload and stores a new event for the organizer.
func (s *Service) Create(ctx context.Context, organizerID string, in validate.EventInput) (*models.Event, error) {
	if errs := validate.EventCreate(in); len(errs) > 0 {
		return nil, errs
	}

	when, err := validate.CombineDateTime(in.Date, in.Time)
	if err != nil {
		return nil, validate.Errors{{Field: "date", Message: "event date must be a valid date"}}
	}

	event := &models.Event{
		ID:          models.NewID(),
		Name:        strings.TrimSpace(in.Name),
		EventDate:   when,
		EventTime:   strings.TrimSpace(in.Time),
		Address:     strings.TrimSpace(in.Location.Address),
		OrganizerID: organizerID,
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		event.Description = sql.NullString{String: desc, Valid: true}
	}
	if in.MaxAttendees != nil {
		event.MaxAttendees = sql.NullInt64{Int64: int64(*in.MaxAttendees), Valid: true}
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEventExists
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	slog.Info("event_created", "event_id", event.ID, "organizer_id", organizerID)
	return event, nil
}

// ListUpcoming returns all future events, soonest first. Reports ErrNoEvents
// when there are none.
func (s *Service) ListUpcoming(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.ListUpcomingEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	return events, nil
}

// Get returns a single event by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Update applies a validated partial patch to an event owned by the
// organizer.
func (s *Service) Update(ctx context.Context, id, organizerID string, patch map[string]any) (*models.Event, error) {
	if errs := validate.EventUpdate(patch); len(errs) > 0 {
		return nil, errs
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrEventNotFound
	}

	if raw, ok := patch["name"]; ok {
		name, _ := raw.(string)
		event.Name = strings.TrimSpace(name)
	}
	if raw, ok := patch["time"]; ok {
		clock, _ := raw.(string)
		event.EventTime = strings.TrimSpace(clock)
	}
	if raw, ok := patch["date"]; ok {
		date, _ := raw.(string)
		when, err := validate.CombineDateTime(strings.TrimSpace(date), event.EventTime)
		if err != nil {
			return nil, validate.Errors{{Field: "date", Message: "event date must be a valid date"}}
		}
		event.EventDate = when
	} else if _, ok := patch["time"]; ok {
		// Time changed without the date: recombine with the stored day.
		when, err := validate.CombineDateTime(event.EventDate.Format("2006-01-02"), event.EventTime)
		if err != nil {
			return nil, validate.Errors{{Field: "time", Message: "event time must be in H:MM AM/PM format"}}
		}
		event.EventDate = when
	}
	if raw, ok := patch["location"]; ok {
		if loc, ok := raw.(map[string]any); ok {
			address, _ := loc["address"].(string)
			event.Address = strings.TrimSpace(address)
		}
	}
	if raw, ok := patch["description"]; ok {
		desc, _ := raw.(string)
		event.Description = sql.NullString{String: strings.TrimSpace(desc), Valid: strings.TrimSpace(desc) != ""}
	}
	if raw, ok := patch["maxAttendees"]; ok {
		if n, ok := raw.(float64); ok {
			event.MaxAttendees = sql.NullInt64{Int64: int64(n), Valid: true}
		}
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEventExists
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	slog.Info("event_updated", "event_id", event.ID, "organizer_id", organizerID)
	return event, nil
}

// Delete removes an event owned by the organizer.
func (s *Service) Delete(ctx context.Context, id, organizerID string) error {
	if err := s.repo.DeleteEvent(ctx, id, organizerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	slog.Info("event_deleted", "event_id", id, "organizer_id", organizerID)
	return nil
}
