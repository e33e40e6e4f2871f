// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email sends account lifecycle mail over SMTP.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/planora/planora/internal/config"
	"github.com/wneessen/go-mail"
)

// Service sends mail via SMTP using go-mail.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// VerificationEmail renders the subject and body for an email verification
// message carrying the given token.
func (s *Service) VerificationEmail(token string) (subject, html string) {
	verifyURL := fmt.Sprintf("%s/user/verify-email/%s", s.baseURL, token)
	subject = "Verify your email address"
	html = fmt.Sprintf(
		`<p>Welcome to Planora!</p>
<p>Please confirm your email address by clicking the link below. The link is valid for one hour.</p>
<p><a href=%q>Verify email</a></p>`, verifyURL)
	return subject, html
}

// PasswordResetEmail renders the subject and body for a password reset
// message carrying the given token.
func (s *Service) PasswordResetEmail(token string) (subject, html string) {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	subject = "Reset your password"
	html = fmt.Sprintf(
		`<p>We received a request to reset your password.</p>
<p>Click the link below to choose a new password. The link is valid for one hour.</p>
<p><a href=%q>Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>`, resetURL)
	return subject, html
}

// SendVerification sends an email verification message carrying the token.
func (s *Service) SendVerification(ctx context.Context, to, token string) error {
	subject, html := s.VerificationEmail(token)
	return s.Send(ctx, to, subject, html)
}

// SendPasswordReset sends a password reset message carrying the token.
func (s *Service) SendPasswordReset(ctx context.Context, to, token string) error {
	subject, html := s.PasswordResetEmail(token)
	return s.Send(ctx, to, subject, html)
}

// Send sends an email via SMTP.
func (s *Service) Send(ctx context.Context, to, subject, html string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Implicit TLS (SSL) for port 465, STARTTLS for others
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
