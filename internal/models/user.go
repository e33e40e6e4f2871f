// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// User is an identity record. The password is stored hashed only; the
// verification and reset tokens track the email-driven lifecycle flows.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID                string         `db:"id" json:"id"`
	Username          string         `db:"username" json:"username"`
	Email             string         `db:"email" json:"email"`
	PasswordHash      string         `db:"password_hash" json:"-"`
	FullName          string         `db:"full_name" json:"fullName"`
	Bio               sql.NullString `db:"bio" json:"-"`
	ProfilePicture    sql.NullString `db:"profile_picture" json:"-"`
	IsVerified        bool           `db:"is_verified" json:"isVerified"`
	VerificationToken sql.NullString `db:"verification_token" json:"-"`
	ResetToken        sql.NullString `db:"reset_token" json:"-"`
	ResetTokenExpiry  sql.NullTime   `db:"reset_token_expiry" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
}

// PublicUser is the projection returned to clients. It never carries the
// password hash or lifecycle tokens.
type PublicUser struct { //nolint:govet // fieldalignment: readability over optimization
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Bio:            u.Bio.String,
		ProfilePicture: u.ProfilePicture.String,
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
