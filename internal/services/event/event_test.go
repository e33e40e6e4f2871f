// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/planora/planora/internal/services/event"
	"github.com/planora/planora/internal/testutil"
	"github.com/planora/planora/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate() string {
	return time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
}

func eventInput(name string) validate.EventInput {
	return validate.EventInput{
		Name:     name,
		Date:     futureDate(),
		Time:     "6:30 PM",
		Location: validate.EventLocation{Address: "1 Main Street"},
	}
}

func TestCreate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	organizer := testutil.NewTestUser(t, repo, "alice")
	ctx := context.Background()

	in := eventInput("Team Standup")
	in.Description = "Daily sync for the whole team."
	attendees := 25
	in.MaxAttendees = &attendees

	created, err := svc.Create(ctx, organizer.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Team Standup", created.Name)
	assert.Equal(t, "6:30 PM", created.EventTime)
	assert.Equal(t, 18, created.EventDate.Hour())
	assert.Equal(t, organizer.ID, created.OrganizerID)
	assert.Equal(t, int64(25), created.MaxAttendees.Int64)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreate_Duplicate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	alice := testutil.NewTestUser(t, repo, "alice")
	bob := testutil.NewTestUser(t, repo, "bob")
	ctx := context.Background()

	_, err := svc.Create(ctx, alice.ID, eventInput("Team Standup"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice.ID, eventInput("Team Standup"))
	assert.ErrorIs(t, err, event.ErrEventExists)

	// Same name and day under a different organizer is fine.
	_, err = svc.Create(ctx, bob.ID, eventInput("Team Standup"))
	assert.NoError(t, err)
}

func TestCreate_ValidationError(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)

	in := eventInput("Old Meetup")
	in.Date = "2020-01-01"
	_, err := svc.Create(context.Background(), "someone", in)

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "event date must be in the future", verrs.First())
}

func TestListUpcoming(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	organizer := testutil.NewTestUser(t, repo, "alice")
	ctx := context.Background()

	_, err := svc.ListUpcoming(ctx)
	assert.ErrorIs(t, err, event.ErrNoEvents)

	later := eventInput("Later Event")
	later.Date = time.Now().UTC().AddDate(0, 2, 0).Format("2006-01-02")
	_, err = svc.Create(ctx, organizer.ID, later)
	require.NoError(t, err)
	_, err = svc.Create(ctx, organizer.ID, eventInput("Sooner Event"))
	require.NoError(t, err)

	events, err := svc.ListUpcoming(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner Event", events[0].Name)
	assert.Equal(t, "Later Event", events[1].Name)
}

func TestUpdate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	organizer := testutil.NewTestUser(t, repo, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, organizer.ID, eventInput("Team Standup"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, organizer.ID, map[string]any{
		"name": "Team Retro",
		"time": "9:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, "Team Retro", updated.Name)
	assert.Equal(t, "9:00 AM", updated.EventTime)

	// The stored instant follows the new clock time on the same day.
	assert.Equal(t, 9, updated.EventDate.Hour())
	assert.Equal(t, created.EventDate.Format("2006-01-02"), updated.EventDate.Format("2006-01-02"))
}

func TestUpdate_ValidationErrors(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	organizer := testutil.NewTestUser(t, repo, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, organizer.ID, eventInput("Team Standup"))
	require.NoError(t, err)

	var verrs validate.Errors

	_, err = svc.Update(ctx, created.ID, organizer.ID, map[string]any{})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "at least one field is required to update", verrs.First())

	_, err = svc.Update(ctx, created.ID, organizer.ID, map[string]any{"venue": "elsewhere"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "invalid fields: venue", verrs.First())

	_, err = svc.Update(ctx, created.ID, organizer.ID, map[string]any{"time": "13:00 PM"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "event time must be in H:MM AM/PM format", verrs.First())
}

func TestUpdate_OrganizerOnly(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	alice := testutil.NewTestUser(t, repo, "alice")
	bob := testutil.NewTestUser(t, repo, "bob")
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, eventInput("Team Standup"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, bob.ID, map[string]any{"name": "Hijacked"})
	assert.ErrorIs(t, err, event.ErrEventNotFound)

	err = svc.Delete(ctx, created.ID, bob.ID)
	assert.ErrorIs(t, err, event.ErrEventNotFound)

	// Alice still owns it untouched.
	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Team Standup", fetched.Name)
}

func TestDelete(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := event.NewService(repo)
	organizer := testutil.NewTestUser(t, repo, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, organizer.ID, eventInput("Team Standup"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, organizer.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, event.ErrEventNotFound)

	err = svc.Delete(ctx, created.ID, organizer.ID)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}
