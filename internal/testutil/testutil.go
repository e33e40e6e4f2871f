// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/database"
	"github.com/planora/planora/internal/models"
	"github.com/planora/planora/internal/repository"
	"github.com/planora/planora/internal/token"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTokenService returns a token service with a fixed test key.
func NewTokenService(t *testing.T) *token.Service {
	t.Helper()
	return token.NewService([]byte("test-signing-key"), "planora-test")
}

// NewTestUser creates a test user with the password "Secret1".
func NewTestUser(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           models.NewID(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FullName:     "Test " + username,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// FakeMailer records lifecycle emails instead of sending them. Setting Err
// makes every send fail, for exercising the log-and-continue paths.
type FakeMailer struct {
	mu                 sync.Mutex
	Err                error
	VerificationSends  []string // tokens, in order
	PasswordResetSends []string
	Recipients         []string
}

// SendVerification records a verification email.
func (m *FakeMailer) SendVerification(_ context.Context, to, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.VerificationSends = append(m.VerificationSends, tok)
	m.Recipients = append(m.Recipients, to)
	return nil
}

// SendPasswordReset records a password reset email.
func (m *FakeMailer) SendPasswordReset(_ context.Context, to, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.PasswordResetSends = append(m.PasswordResetSends, tok)
	m.Recipients = append(m.Recipients, to)
	return nil
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
