// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package token issues and verifies the signed, time-limited tokens used for
// sessions, email verification and password resets.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. A token issued for one purpose never verifies for another.
const (
	PurposeSession       = "session"
	PurposeVerifyEmail   = "verify-email"
	PurposeResetPassword = "reset-password"
)

// DefaultTTL is the validity window shared by all token purposes.
const DefaultTTL = time.Hour

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and purpose
	// mismatches.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload encoded into every token.
type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens.
type Service struct {
	signingKey []byte
	issuer     string
}

// NewService creates a token service with the given signing key.
func NewService(signingKey []byte, issuer string) *Service {
	return &Service{signingKey: signingKey, issuer: issuer}
}

// Issue creates a signed token for the subject, scoped to a purpose and
// valid for ttl.
func (s *Service) Issue(subject, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string for the expected purpose.
// Expired tokens return ErrTokenExpired; everything else that fails returns
// ErrInvalidToken so callers can surface the two kinds distinctly.
func (s *Service) Verify(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
