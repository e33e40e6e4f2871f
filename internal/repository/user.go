// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/planora/planora/internal/models"
)

// CreateUser inserts a new user. Returns ErrDuplicate when the username or
// email is already taken.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, full_name, bio, profile_picture,
		                    is_verified, verification_token, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FullName,
		user.Bio, user.ProfilePicture, user.IsVerified, user.VerificationToken,
		user.CreatedAt, user.UpdatedAt)
	return wrapError(err)
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByUsernameOrEmail retrieves a user whose username or email matches
// the identifier. Callers normalize the email side to lower case.
func (r *Repository) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE username = ? OR email = ?`, identifier, identifier)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (r *Repository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name = ?, bio = ?, profile_picture = ?, updated_at = ? WHERE id = ?`,
		user.FullName, user.Bio, user.ProfilePicture, user.UpdatedAt, user.ID)
	return wrapError(err)
}

// UpdateUserPassword replaces a user's password hash.
func (r *Repository) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now().UTC(), id)
	return wrapError(err)
}

// SetVerificationToken stores a fresh email verification token on the user.
func (r *Repository) SetVerificationToken(ctx context.Context, id, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET verification_token = ?, updated_at = ? WHERE id = ?`,
		token, time.Now().UTC(), id)
	return wrapError(err)
}

// MarkUserVerified flips the verification flag and clears the stored token.
func (r *Repository) MarkUserVerified(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, verification_token = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	return wrapError(err)
}

// SetResetToken stores a password reset token and its expiry on the user.
func (r *Repository) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token = ?, reset_token_expiry = ?, updated_at = ? WHERE id = ?`,
		token, expiry, time.Now().UTC(), id)
	return wrapError(err)
}

// ClearResetToken removes the stored reset token and expiry.
func (r *Repository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token = NULL, reset_token_expiry = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	return wrapError(err)
}
