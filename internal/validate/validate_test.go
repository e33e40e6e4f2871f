// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package validate_test

import (
	"testing"
	"time"

	"github.com/planora/planora/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_Valid(t *testing.T) {
	errs := validate.Signup(validate.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		FullName: "Alice Example",
	})
	assert.Empty(t, errs)
}

func TestSignup_Invalid(t *testing.T) {
	errs := validate.Signup(validate.SignupInput{
		Username: "al",
		Email:    "not-an-email",
		Password: "12345",
		FullName: "  x ",
	})
	require.Len(t, errs, 4)
	assert.Equal(t, "username", errs[0].Field)
	assert.Equal(t, "email", errs[1].Field)
	assert.Equal(t, "password", errs[2].Field)
	assert.Equal(t, "fullName", errs[3].Field)
}

func TestSignup_TrimsWhitespace(t *testing.T) {
	errs := validate.Signup(validate.SignupInput{
		Username: "   ",
		Email:    " alice@example.com ",
		Password: "secret1",
		FullName: " Alice Example ",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "username", errs[0].Field)
	assert.Equal(t, "username is required", errs[0].Message)
}

func TestLogin(t *testing.T) {
	assert.Empty(t, validate.Login(validate.LoginInput{Identifier: "alice", Password: "x"}))

	errs := validate.Login(validate.LoginInput{})
	require.Len(t, errs, 2)
	assert.Equal(t, "username or email is required", errs[0].Message)
	assert.Equal(t, "password is required", errs[1].Message)
}

func TestPassword_Strength(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"abc12", false},  // no uppercase
		{"ABCDE", false},  // no lowercase, no digit
		{"Abcde1", true},
		{"Abc1", false},   // too short
		{"   ", false},    // blank
		{"", false},
		{"Passw0rd", true},
	}

	for _, tt := range tests {
		errs := validate.Password(tt.password)
		if tt.valid {
			assert.Empty(t, errs, "password %q should be valid", tt.password)
		} else {
			assert.NotEmpty(t, errs, "password %q should be invalid", tt.password)
		}
	}
}

func TestPassword_BlankFailsFirst(t *testing.T) {
	errs := validate.Password("   ")
	require.Len(t, errs, 1)
	assert.Equal(t, "password is required", errs[0].Message)
}

func TestFullName(t *testing.T) {
	assert.Empty(t, validate.FullName("Alice Example"))
	assert.Empty(t, validate.FullName("Åsa"))

	errs := validate.FullName("   ")
	require.Len(t, errs, 1)
	assert.Equal(t, "full name is required", errs[0].Message)

	// Length counts runes, not bytes: two characters fail even when they
	// encode to three bytes.
	errs = validate.FullName("éa")
	require.Len(t, errs, 1)
	assert.Equal(t, "full name must be at least 3 characters long", errs[0].Message)
}

func TestEmail(t *testing.T) {
	assert.Empty(t, validate.Email("alice@example.com"))
	assert.NotEmpty(t, validate.Email("nope"))
	assert.NotEmpty(t, validate.Email(""))
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func validEvent() validate.EventInput {
	return validate.EventInput{
		Name:     "Team Offsite",
		Date:     futureDate(),
		Time:     "06:30 PM",
		Location: validate.EventLocation{Address: "12 Main Street"},
	}
}

func TestEventCreate_Valid(t *testing.T) {
	assert.Empty(t, validate.EventCreate(validEvent()))
}

func TestEventCreate_PastDate(t *testing.T) {
	in := validEvent()
	in.Date = "2020-01-01"
	in.Time = "6:30 PM"

	errs := validate.EventCreate(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "date", errs[0].Field)
	assert.Equal(t, "event date must be in the future", errs[0].Message)
}

func TestEventCreate_TimeFormats(t *testing.T) {
	valid := []string{"6:30 PM", "06:30 PM", "12:00 am", "12:00PM", "1:05 aM"}
	for _, clock := range valid {
		in := validEvent()
		in.Time = clock
		assert.Empty(t, validate.EventCreate(in), "time %q should be valid", clock)
	}

	invalid := []string{"13:00 PM", "0:30 AM", "6:60 PM", "6.30 PM", "630 PM", "6:30"}
	for _, clock := range invalid {
		in := validEvent()
		in.Time = clock
		assert.NotEmpty(t, validate.EventCreate(in), "time %q should be invalid", clock)
	}
}

func TestEventCreate_MissingFields(t *testing.T) {
	errs := validate.EventCreate(validate.EventInput{})
	require.NotEmpty(t, errs)

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["date"])
	assert.True(t, fields["time"])
	assert.True(t, fields["location.address"])
}

func TestEventCreate_OptionalFields(t *testing.T) {
	in := validEvent()
	in.Description = "short"
	errs := validate.EventCreate(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "description", errs[0].Field)

	// A zero capacity must be rejected, not skipped as an absent value.
	in = validEvent()
	zero := 0
	in.MaxAttendees = &zero
	errs = validate.EventCreate(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "maxAttendees", errs[0].Field)
	assert.Equal(t, "maxAttendees must be a positive integer", errs[0].Message)

	in = validEvent()
	negative := -3
	in.MaxAttendees = &negative
	errs = validate.EventCreate(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "maxAttendees", errs[0].Field)

	in = validEvent()
	one := 1
	in.MaxAttendees = &one
	assert.Empty(t, validate.EventCreate(in))
}

func TestEventUpdate_EmptyPatch(t *testing.T) {
	errs := validate.EventUpdate(map[string]any{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at least one field")
}

func TestEventUpdate_UnknownFields(t *testing.T) {
	errs := validate.EventUpdate(map[string]any{"name": "Updated Name", "organizer": "someone"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "invalid fields")
	assert.Contains(t, errs[0].Message, "organizer")
}

func TestEventUpdate_PartialFields(t *testing.T) {
	assert.Empty(t, validate.EventUpdate(map[string]any{"name": "Updated Name"}))

	errs := validate.EventUpdate(map[string]any{"name": "ab"})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)

	errs = validate.EventUpdate(map[string]any{"maxAttendees": float64(-1)})
	require.Len(t, errs, 1)
	assert.Equal(t, "maxAttendees", errs[0].Field)

	errs = validate.EventUpdate(map[string]any{"date": "2020-01-01", "time": "6:30 PM"})
	require.Len(t, errs, 1)
	assert.Equal(t, "event date must be in the future", errs[0].Message)
}

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		clock string
		hour  int
	}{
		{"12:00 AM", 0},
		{"12:00 PM", 12},
		{"6:30 PM", 18},
		{"6:30 AM", 6},
		{"11:59 pm", 23},
	}

	for _, tt := range tests {
		when, err := validate.CombineDateTime("2030-05-20", tt.clock)
		require.NoError(t, err, "time %q", tt.clock)
		assert.Equal(t, tt.hour, when.Hour(), "time %q", tt.clock)
		assert.Equal(t, time.UTC, when.Location())
	}

	_, err := validate.CombineDateTime("2030-13-01", "6:30 PM")
	assert.Error(t, err)

	_, err = validate.CombineDateTime("2030-05-20", "25:00 PM")
	assert.Error(t, err)
}
