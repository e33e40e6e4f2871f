// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// RevokedToken marks a session token unusable before its natural expiry.
// ExpiresAt equals RevokedAt plus the session TTL, so entries can be pruned
// once the token itself would have expired anyway.
type RevokedToken struct { //nolint:govet // fieldalignment: readability over optimization
	Token     string    `db:"token" json:"-"`
	RevokedAt time.Time `db:"revoked_at" json:"revokedAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}
