// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/handlers"
	"github.com/planora/planora/internal/middleware"
	"github.com/planora/planora/internal/repository"
	"github.com/planora/planora/internal/services/account"
	"github.com/planora/planora/internal/services/event"
	"github.com/planora/planora/internal/testutil"
	"github.com/planora/planora/internal/token"
	"github.com/planora/planora/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	e        *echo.Echo
	h        *handlers.Handlers
	repo     *repository.Repository
	accounts *account.Service
	mailer   *testutil.FakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	tokens := testutil.NewTokenService(t)
	mailer := &testutil.FakeMailer{}
	accounts := account.NewService(repo, tokens, mailer)
	events := event.NewService(repo)
	return &fixture{
		e:        echo.New(),
		h:        handlers.New(accounts, events),
		repo:     repo,
		accounts: accounts,
		mailer:   mailer,
	}
}

func (f *fixture) signup(t *testing.T) {
	t.Helper()
	_, err := f.accounts.Signup(context.Background(), validate.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Secret1",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
}

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/health", nil)

	require.NoError(t, f.h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec.Body.String())["status"])
}

func TestSignupHandler(t *testing.T) {
	f := newFixture(t)
	body := `{"username":"alice","email":"alice@example.com","password":"Secret1","fullName":"Alice Example"}`
	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/signup", strings.NewReader(body))

	require.NoError(t, f.h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec.Body.String())
	assert.Equal(t, "user created successfully", resp["message"])
	user := resp["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])

	// Secrets never leak into the response.
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "verificationToken")
}

func TestSignupHandler_ValidationError(t *testing.T) {
	f := newFixture(t)
	body := `{"username":"al","email":"not-an-email","password":"123","fullName":""}`
	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/signup", strings.NewReader(body))

	require.NoError(t, f.h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username must be at least 3 characters long", decodeBody(t, rec.Body.String())["message"])
}

func TestSignupHandler_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.signup(t)

	body := `{"username":"alice","email":"other@example.com","password":"Secret1","fullName":"Alice Example"}`
	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/signup", strings.NewReader(body))

	require.NoError(t, f.h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user already exists", decodeBody(t, rec.Body.String())["message"])
}

func TestLoginHandler(t *testing.T) {
	f := newFixture(t)
	f.signup(t)

	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/login",
		strings.NewReader(`{"username":"alice","password":"Secret1"}`))

	require.NoError(t, f.h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec.Body.String())
	assert.Equal(t, "login successful", resp["message"])
	assert.NotEmpty(t, resp["token"])
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.signup(t)

	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/login",
		strings.NewReader(`{"username":"alice","password":"Wrong1"}`))

	require.NoError(t, f.h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeBody(t, rec.Body.String())["message"])
}

func TestVerifyEmailHandler(t *testing.T) {
	f := newFixture(t)
	f.signup(t)

	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/user/verify-email/token", nil)
	c.SetParamNames("token")
	c.SetParamValues(f.mailer.VerificationSends[0])

	require.NoError(t, f.h.VerifyEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "email verified successfully", decodeBody(t, rec.Body.String())["message"])
}

func TestVerifyEmailHandler_BadToken(t *testing.T) {
	f := newFixture(t)

	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/user/verify-email/token", nil)
	c.SetParamNames("token")
	c.SetParamValues("garbage")

	require.NoError(t, f.h.VerifyEmail(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid token", decodeBody(t, rec.Body.String())["message"])
}

func TestForgotPasswordHandler_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/forgot-password",
		strings.NewReader(`{"email":"nobody@example.com"}`))

	require.NoError(t, f.h.ForgotPassword(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", decodeBody(t, rec.Body.String())["message"])
}

func TestResetPasswordHandler(t *testing.T) {
	f := newFixture(t)
	f.signup(t)
	require.NoError(t, f.accounts.ForgotPassword(context.Background(), "alice@example.com"))

	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/reset-password/token",
		strings.NewReader(`{"password":"NewPass1"}`))
	c.SetParamNames("token")
	c.SetParamValues(f.mailer.PasswordResetSends[0])

	require.NoError(t, f.h.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "password reset successful", decodeBody(t, rec.Body.String())["message"])
}

func TestResendVerificationHandler_AlreadyVerified(t *testing.T) {
	f := newFixture(t)
	f.signup(t)
	require.NoError(t, f.accounts.VerifyEmail(context.Background(), f.mailer.VerificationSends[0]))

	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/resend-verification",
		strings.NewReader(`{"email":"alice@example.com"}`))

	require.NoError(t, f.h.ResendVerificationEmail(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is already verified", decodeBody(t, rec.Body.String())["message"])
}

func TestProfileHandlers(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "alice")

	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/user/profile", nil)
	c.Set(middleware.UserIDKey, user.ID)
	require.NoError(t, f.h.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = testutil.NewEchoContext(f.e, http.MethodPatch, "/user/profile",
		strings.NewReader(`{"bio":"Event person."}`))
	c.Set(middleware.UserIDKey, user.ID)
	require.NoError(t, f.h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec.Body.String())
	updated := resp["user"].(map[string]any)
	assert.Equal(t, "Event person.", updated["bio"])
}

func TestLogoutHandler(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "alice")
	tokens := testutil.NewTokenService(t)
	session, err := tokens.Issue(user.ID, token.PurposeSession, account.SessionTTL)
	require.NoError(t, err)

	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/user/logout", nil)
	c.Set(middleware.TokenKey, session)
	require.NoError(t, f.h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	revoked, err := f.repo.IsTokenRevoked(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, revoked)
}
