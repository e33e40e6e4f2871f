// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/middleware"
	"github.com/planora/planora/internal/services/account"
	"github.com/planora/planora/internal/validate"
)

// Signup registers a new user.
func (h *Handlers) Signup(c echo.Context) error {
	var in validate.SignupInput
	if err := c.Bind(&in); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.accounts.Signup(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "user created successfully",
		"user":    user.Public(),
	})
}

// Login authenticates a user and returns a session token.
func (h *Handlers) Login(c echo.Context) error {
	var in validate.LoginInput
	if err := c.Bind(&in); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	tok, user, err := h.accounts.Login(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "login successful",
		"token":   tok,
		"user":    user.Public(),
	})
}

// Logout revokes the current session token.
func (h *Handlers) Logout(c echo.Context) error {
	if err := h.accounts.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "logged out successfully")
}

// VerifyEmail confirms the email address behind a verification token.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	if err := h.accounts.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "email verified successfully")
}

type emailRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts the password reset flow.
func (h *Handlers) ForgotPassword(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.accounts.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "password reset email sent")
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword sets a new password using a reset token.
func (h *Handlers) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "password reset successful")
}

// ResendVerificationEmail sends a fresh verification email.
func (h *Handlers) ResendVerificationEmail(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.accounts.ResendVerificationEmail(c.Request().Context(), req.Email); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "verification email sent")
}

// Profile returns the authenticated user's profile.
func (h *Handlers) Profile(c echo.Context) error {
	user, err := h.accounts.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "profile fetched successfully",
		"user":    user.Public(),
	})
}

// UpdateProfile applies a partial profile change.
func (h *Handlers) UpdateProfile(c echo.Context) error {
	var update account.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), middleware.UserID(c), update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "profile updated successfully",
		"user":    user.Public(),
	})
}
