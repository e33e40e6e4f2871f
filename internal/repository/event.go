// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/planora/planora/internal/models"
)

// CreateEvent inserts a new event. Returns ErrDuplicate when the organizer
// already has an event with the same name and date.
func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, name, event_date, event_time, address, description,
		                     max_attendees, organizer_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.EventDate, event.EventTime, event.Address,
		event.Description, event.MaxAttendees, event.OrganizerID,
		event.CreatedAt, event.UpdatedAt)
	return wrapError(err)
}

// GetEventByID retrieves an event by its ID.
func (r *Repository) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &event, nil
}

// ListUpcomingEvents returns events whose date is in the future, soonest first.
func (r *Repository) ListUpcomingEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.SelectContext(ctx, &events,
		`SELECT * FROM events WHERE event_date > ? ORDER BY event_date ASC`, time.Now().UTC())
	if err != nil {
		return nil, wrapError(err)
	}
	return events, nil
}

// UpdateEvent persists changes to an event. The write is scoped to the
// organizer; updating someone else's event reports ErrNotFound.
func (r *Repository) UpdateEvent(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET name = ?, event_date = ?, event_time = ?, address = ?,
		        description = ?, max_attendees = ?, updated_at = ?
		 WHERE id = ? AND organizer_id = ?`,
		event.Name, event.EventDate, event.EventTime, event.Address,
		event.Description, event.MaxAttendees, event.UpdatedAt,
		event.ID, event.OrganizerID)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event owned by the given organizer.
func (r *Repository) DeleteEvent(ctx context.Context, id, organizerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = ? AND organizer_id = ?`, id, organizerID)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
