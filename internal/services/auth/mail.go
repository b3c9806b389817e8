package auth

import (
	"context"
	"log/slog"
)

// MailSender delivers a login link to a participant. SMTP delivery lives
// outside this service; deployments inject their own implementation.
type MailSender interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

// LogMailSender writes login links to the log instead of sending email.
// Useful for local development and tests.
type LogMailSender struct {
	logger *slog.Logger
}

// Ensure LogMailSender implements MailSender
var _ MailSender = (*LogMailSender)(nil)

// NewLogMailSender creates a LogMailSender
func NewLogMailSender(logger *slog.Logger) *LogMailSender {
	return &LogMailSender{logger: logger}
}

// SendLoginLink logs the link at info level
func (m *LogMailSender) SendLoginLink(ctx context.Context, email, link string) error {
	m.logger.Info("magic link issued",
		slog.String("email", email),
		slog.String("link", link),
	)
	return nil
}
