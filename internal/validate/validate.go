// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package validate holds the pure request validation rules for signup,
// login, password and event payloads.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is an ordered list of field errors. An empty list means valid.
type Errors []FieldError

// Error joins all messages, first one leading.
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// First returns the first error message, or "" when valid.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// check runs ozzo rules against a value and appends a field error on failure.
func check(errs Errors, field string, value any, rules ...validation.Rule) Errors {
	if err := validation.Validate(value, rules...); err != nil {
		errs = append(errs, FieldError{Field: field, Message: err.Error()})
	}
	return errs
}

// SignupInput is the raw signup payload.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Signup validates a signup payload.
func Signup(in SignupInput) Errors {
	var errs Errors
	errs = check(errs, "username", strings.TrimSpace(in.Username),
		validation.Required.Error("username is required"),
		validation.Length(3, 0).Error("username must be at least 3 characters long"))
	errs = check(errs, "email", strings.TrimSpace(in.Email),
		validation.Required.Error("email is required"),
		is.Email.Error("please provide a valid email address"))
	errs = check(errs, "password", in.Password,
		validation.Required.Error("password is required"),
		validation.Length(6, 0).Error("password must be at least 6 characters long"))
	errs = check(errs, "fullName", strings.TrimSpace(in.FullName),
		validation.Required.Error("full name is required"),
		validation.Length(3, 0).Error("full name must be at least 3 characters long"))
	return errs
}

// Email validates a bare email address as used by the forgot-password and
// resend-verification flows.
func Email(email string) Errors {
	var errs Errors
	errs = check(errs, "email", strings.TrimSpace(email),
		validation.Required.Error("email is required"),
		is.Email.Error("please provide a valid email address"))
	return errs
}

// FullName validates a profile full name as used by profile updates.
func FullName(name string) Errors {
	var errs Errors
	errs = check(errs, "fullName", strings.TrimSpace(name),
		validation.Required.Error("full name is required"),
		validation.Length(3, 0).Error("full name must be at least 3 characters long"))
	return errs
}

// LoginInput is the raw login payload. Identifier is a username or email.
type LoginInput struct {
	Identifier string `json:"username"`
	Password   string `json:"password"`
}

// Login validates a login payload.
func Login(in LoginInput) Errors {
	var errs Errors
	errs = check(errs, "username", strings.TrimSpace(in.Identifier),
		validation.Required.Error("username or email is required"))
	errs = check(errs, "password", in.Password,
		validation.Required.Error("password is required"))
	return errs
}

var (
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// Password validates password strength for the reset flow: at least five
// characters with one uppercase letter, one lowercase letter and one digit.
func Password(password string) Errors {
	if strings.TrimSpace(password) == "" {
		return Errors{{Field: "password", Message: "password is required"}}
	}
	var errs Errors
	errs = check(errs, "password", password,
		validation.Length(5, 0).Error("password must be at least 5 characters long"),
		validation.Match(upperRe).Error("password must contain at least one uppercase letter"),
		validation.Match(lowerRe).Error("password must contain at least one lowercase letter"),
		validation.Match(digitRe).Error("password must contain at least one number"))
	return errs
}

// EventLocation is the nested location payload.
type EventLocation struct {
	Address string `json:"address"`
}

// EventInput is the raw event creation payload. Date is a calendar date
// (YYYY-MM-DD) and Time a 12-hour clock string such as "6:30 PM".
type EventInput struct {
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Location     EventLocation `json:"location"`
	Description  string        `json:"description"`
	MaxAttendees *int          `json:"maxAttendees"`
}

// timeRe matches H:MM AM/PM with hour 1-12, minute 00-59, case-insensitive
// meridiem and an optional space before it.
var timeRe = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9])\s?([AaPp][Mm])$`)

// EventCreate validates an event creation payload.
func EventCreate(in EventInput) Errors {
	var errs Errors
	errs = check(errs, "name", strings.TrimSpace(in.Name),
		validation.Required.Error("event name is required"),
		validation.Length(3, 100).Error("event name must be between 3 and 100 characters"))

	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)

	dateOK := true
	if date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "event date is required"})
		dateOK = false
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "event date must be a valid date"})
		dateOK = false
	}

	timeOK := true
	if clock == "" {
		errs = append(errs, FieldError{Field: "time", Message: "event time is required"})
		timeOK = false
	} else if !timeRe.MatchString(clock) {
		errs = append(errs, FieldError{Field: "time", Message: "event time must be in H:MM AM/PM format"})
		timeOK = false
	}

	if dateOK && timeOK {
		when, err := CombineDateTime(date, clock)
		if err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "event date must be a valid date"})
		} else if !when.After(time.Now().UTC()) {
			errs = append(errs, FieldError{Field: "date", Message: "event date must be in the future"})
		}
	}

	errs = check(errs, "location.address", strings.TrimSpace(in.Location.Address),
		validation.Required.Error("location address is required"),
		validation.Length(3, 200).Error("location address must be between 3 and 200 characters"))

	if desc := strings.TrimSpace(in.Description); desc != "" {
		errs = check(errs, "description", desc,
			validation.Length(10, 500).Error("description must be between 10 and 500 characters"))
	}

	// Checked by hand: ozzo threshold rules treat 0 as an empty value and
	// skip it, which would let a zero-capacity event through.
	if in.MaxAttendees != nil && *in.MaxAttendees < 1 {
		errs = append(errs, FieldError{Field: "maxAttendees", Message: "maxAttendees must be a positive integer"})
	}

	return errs
}

// eventFields are the field names accepted by an event update patch.
var eventFields = map[string]bool{
	"name":         true,
	"date":         true,
	"time":         true,
	"location":     true,
	"description":  true,
	"maxAttendees": true,
}

// EventUpdate validates a partial event update. Rules apply only to fields
// present in the patch; unknown field names are rejected and at least one
// field is required.
func EventUpdate(patch map[string]any) Errors {
	if len(patch) == 0 {
		return Errors{{Field: "", Message: "at least one field is required to update"}}
	}

	var unknown []string
	for key := range patch {
		if !eventFields[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Errors{{Field: "", Message: "invalid fields: " + strings.Join(unknown, ", ")}}
	}

	var errs Errors

	if raw, ok := patch["name"]; ok {
		name, _ := raw.(string)
		errs = check(errs, "name", strings.TrimSpace(name),
			validation.Required.Error("event name is required"),
			validation.Length(3, 100).Error("event name must be between 3 and 100 characters"))
	}

	date, dateGiven := stringField(patch, "date")
	clock, timeGiven := stringField(patch, "time")

	dateOK := !dateGiven
	if dateGiven {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "event date must be a valid date"})
		} else {
			dateOK = true
		}
	}
	timeOK := !timeGiven
	if timeGiven {
		if !timeRe.MatchString(clock) {
			errs = append(errs, FieldError{Field: "time", Message: "event time must be in H:MM AM/PM format"})
		} else {
			timeOK = true
		}
	}
	if dateGiven && timeGiven && dateOK && timeOK {
		if when, err := CombineDateTime(date, clock); err == nil && !when.After(time.Now().UTC()) {
			errs = append(errs, FieldError{Field: "date", Message: "event date must be in the future"})
		}
	}

	if raw, ok := patch["location"]; ok {
		address := ""
		if loc, ok := raw.(map[string]any); ok {
			address, _ = loc["address"].(string)
		}
		errs = check(errs, "location.address", strings.TrimSpace(address),
			validation.Required.Error("location address is required"),
			validation.Length(3, 200).Error("location address must be between 3 and 200 characters"))
	}

	if raw, ok := patch["description"]; ok {
		desc, _ := raw.(string)
		errs = check(errs, "description", strings.TrimSpace(desc),
			validation.Length(10, 500).Error("description must be between 10 and 500 characters"))
	}

	if raw, ok := patch["maxAttendees"]; ok {
		n, isNumber := raw.(float64)
		if !isNumber || n != float64(int64(n)) || n < 1 {
			errs = append(errs, FieldError{Field: "maxAttendees", Message: "maxAttendees must be a positive integer"})
		}
	}

	return errs
}

func stringField(patch map[string]any, key string) (string, bool) {
	raw, ok := patch[key]
	if !ok {
		return "", false
	}
	s, _ := raw.(string)
	return strings.TrimSpace(s), true
}

// CombineDateTime builds the UTC instant for a calendar date and a 12-hour
// clock string. 12 AM maps to hour 0, 12 PM stays 12, other PM hours gain 12.
func CombineDateTime(date, clock string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	m := timeRe.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid time %q", clock)
	}

	var hour, minute int
	fmt.Sscanf(m[1], "%d", &hour)
	fmt.Sscanf(m[2], "%d", &minute)

	meridiem := strings.ToUpper(m[3])
	switch {
	case meridiem == "AM" && hour == 12:
		hour = 0
	case meridiem == "PM" && hour != 12:
		hour += 12
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC), nil
}
