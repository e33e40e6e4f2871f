// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/planora/planora/internal/models"
)

// RevokeToken records a token on the revocation list. The insert is
// idempotent; revoking an already revoked token is not an error.
func (r *Repository) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	now := time.Now().UTC()
	entry := models.RevokedToken{Token: token, RevokedAt: now, ExpiresAt: now.Add(ttl)}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (token, revoked_at, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (token) DO NOTHING`,
		entry.Token, entry.RevokedAt, entry.ExpiresAt)
	return wrapError(err)
}

// IsTokenRevoked reports whether the token is on the revocation list.
func (r *Repository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM revoked_tokens WHERE token = ?`, token)
	if err != nil {
		return false, wrapError(err)
	}
	return count > 0, nil
}

// DeleteExpiredRevokedTokens prunes entries past their expiry. Entries live
// exactly as long as a session token, so anything older is rejected by the
// token check itself and no longer needs to be on the list.
func (r *Repository) DeleteExpiredRevokedTokens(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, wrapError(err)
	}
	return res.RowsAffected()
}
