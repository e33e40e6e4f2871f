// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package account orchestrates the account lifecycle workflows: signup,
// login, logout, email verification and password reset.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/planora/planora/internal/models"
	"github.com/planora/planora/internal/repository"
	"github.com/planora/planora/internal/token"
	"github.com/planora/planora/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email is already verified")
)

// SessionTTL is the session token lifetime. Revocation list entries live
// exactly this long so the list self-prunes.
const SessionTTL = token.DefaultTTL

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Mailer sends the lifecycle emails. Failures during signup and
// forgot-password are logged, never surfaced to the caller.
type Mailer interface {
	SendVerification(ctx context.Context, to, tok string) error
	SendPasswordReset(ctx context.Context, to, tok string) error
}

// Service combines the validator, repository, token service and mail
// collaborator into the account workflows. All dependencies are injected at
// startup; there is no ambient global state.
type Service struct {
	repo   *repository.Repository
	tokens *token.Service
	mailer Mailer
}

// NewService creates an account service.
func NewService(repo *repository.Repository, tokens *token.Service, mailer Mailer) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer}
}

// Signup registers a new, unverified user and dispatches a verification
// email. The signup still succeeds when the email cannot be sent.
func (s *Service) Signup(ctx context.Context, in validate.SignupInput) (*models.User, error) {
	if errs := validate.Signup(in); len(errs) > 0 {
		return nil, errs
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           models.NewID(),
		Username:     strings.TrimSpace(in.Username),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(passwordHash),
		FullName:     strings.TrimSpace(in.FullName),
	}

	verification, err := s.tokens.Issue(user.ID, token.PurposeVerifyEmail, token.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}
	user.VerificationToken = sql.NullString{String: verification, Valid: true}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, verification); err != nil {
		slog.Warn("verification email failed", "user_id", user.ID, "error", err)
	}

	slog.Info("signup_success", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login authenticates a user by username or email and returns a session
// token together with the user. A missing user and a wrong password both
// report ErrInvalidCredentials so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, in validate.LoginInput) (string, *models.User, error) {
	if errs := validate.Login(in); len(errs) > 0 {
		return "", nil, errs
	}

	identifier := strings.TrimSpace(in.Identifier)
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	}

	user, err := s.repo.GetUserByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
			slog.Warn("login_failed", "identifier", identifier, "reason", "user_not_found")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		slog.Warn("login_failed", "identifier", identifier, "reason", "invalid_password")
		return "", nil, ErrInvalidCredentials
	}

	session, err := s.tokens.Issue(user.ID, token.PurposeSession, SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	slog.Info("login_success", "user_id", user.ID)
	return session, user, nil
}

// Logout puts the session token on the revocation list. The operation is
// idempotent; a failed revocation write surfaces as an error.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	if err := s.repo.RevokeToken(ctx, sessionToken, SessionTTL); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	slog.Info("logout_success")
	return nil
}

// VerifyEmail marks the token's subject as verified. The presented token
// must equal the one stored on the user record.
func (s *Service) VerifyEmail(ctx context.Context, tok string) error {
	claims, err := s.tokens.Verify(tok, token.PurposeVerifyEmail)
	if err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return token.ErrInvalidToken
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.VerificationToken.Valid || user.VerificationToken.String != tok {
		return token.ErrInvalidToken
	}

	if err := s.repo.MarkUserVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	slog.Info("email_verified", "user_id", user.ID)
	return nil
}

// ForgotPassword issues a reset token, persists it on the user and sends
// the reset email. The request succeeds even when the email cannot be sent.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	if errs := validate.Email(emailAddr); len(errs) > 0 {
		return errs
	}

	user, err := s.repo.GetUserByUsernameOrEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	reset, err := s.tokens.Issue(user.ID, token.PurposeResetPassword, token.DefaultTTL)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := s.repo.SetResetToken(ctx, user.ID, reset, time.Now().UTC().Add(token.DefaultTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, reset); err != nil {
		slog.Warn("password reset email failed", "user_id", user.ID, "error", err)
	}

	slog.Info("password_reset_requested", "user_id", user.ID)
	return nil
}

// ResetPassword sets a new password for the token's subject. The presented
// token must equal the stored one and the stored expiry must not have
// passed, independent of the token's own signature expiry.
func (s *Service) ResetPassword(ctx context.Context, tok, newPassword string) error {
	if errs := validate.Password(newPassword); len(errs) > 0 {
		return errs
	}

	claims, err := s.tokens.Verify(tok, token.PurposeResetPassword)
	if err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return token.ErrInvalidToken
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.ResetToken.Valid || user.ResetToken.String != tok {
		return token.ErrInvalidToken
	}
	if !user.ResetTokenExpiry.Valid || time.Now().UTC().After(user.ResetTokenExpiry.Time) {
		return token.ErrInvalidToken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.repo.ClearResetToken(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	slog.Info("password_reset_success", "user_id", user.ID)
	return nil
}

// ResendVerificationEmail issues a fresh verification token for an
// unverified user and sends it. Succeeds even when the email fails.
func (s *Service) ResendVerificationEmail(ctx context.Context, emailAddr string) error {
	if errs := validate.Email(emailAddr); len(errs) > 0 {
		return errs
	}

	user, err := s.repo.GetUserByUsernameOrEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	verification, err := s.tokens.Issue(user.ID, token.PurposeVerifyEmail, token.DefaultTTL)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	if err := s.repo.SetVerificationToken(ctx, user.ID, verification); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, verification); err != nil {
		slog.Warn("verification email failed", "user_id", user.ID, "error", err)
	}

	slog.Info("verification_resent", "user_id", user.ID)
	return nil
}

// Profile returns the user record behind an authenticated identity.
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ProfileUpdate is a partial profile change.
type ProfileUpdate struct {
	FullName       *string `json:"fullName"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
}

// UpdateProfile applies a partial profile change and returns the updated
// user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		if errs := validate.FullName(*update.FullName); len(errs) > 0 {
			return nil, errs
		}
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Bio != nil {
		user.Bio = sql.NullString{String: strings.TrimSpace(*update.Bio), Valid: true}
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = sql.NullString{String: strings.TrimSpace(*update.ProfilePicture), Valid: true}
	}

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
