// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Event is a scheduled event owned by its organizer. EventDate holds the
// precise UTC instant; EventTime keeps the human 12-hour string as entered.
type Event struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	EventDate    time.Time      `db:"event_date" json:"eventDate"`
	EventTime    string         `db:"event_time" json:"eventTime"`
	Address      string         `db:"address" json:"-"`
	Description  sql.NullString `db:"description" json:"-"`
	MaxAttendees sql.NullInt64  `db:"max_attendees" json:"-"`
	OrganizerID  string         `db:"organizer_id" json:"organizer"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// EventLocation is the nested location object used on the wire.
type EventLocation struct {
	Address string `json:"address"`
}

// EventView is the client-facing shape of an event.
type EventView struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	EventDate    time.Time     `json:"eventDate"`
	EventTime    string        `json:"eventTime"`
	Location     EventLocation `json:"location"`
	Description  string        `json:"description,omitempty"`
	MaxAttendees int64         `json:"maxAttendees,omitempty"`
	OrganizerID  string        `json:"organizer"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// View returns the client-facing shape of the event.
func (e *Event) View() EventView {
	return EventView{
		ID:           e.ID,
		Name:         e.Name,
		EventDate:    e.EventDate,
		EventTime:    e.EventTime,
		Location:     EventLocation{Address: e.Address},
		Description:  e.Description.String,
		MaxAttendees: e.MaxAttendees.Int64,
		OrganizerID:  e.OrganizerID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
