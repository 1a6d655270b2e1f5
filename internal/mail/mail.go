// Package mail delivers verification links to users. The transport is
// pluggable; the default implementation only logs the link, which keeps
// local and CI environments free of SMTP dependencies.
package mail

import (
	"context"
	"log/slog"
)

// Mailer sends an email verification link.
type Mailer interface {
	SendVerification(ctx context.Context, email, name, token string) error
}

// LogMailer writes the verification link to the structured log instead of
// sending mail.
type LogMailer struct {
	apiURL string
}

// NewLogMailer creates a LogMailer. apiURL is the public base URL of this
// API, used to build the verification link.
func NewLogMailer(apiURL string) *LogMailer {
	return &LogMailer{apiURL: apiURL}
}

func (m *LogMailer) SendVerification(_ context.Context, email, name, token string) error {
	slog.Info("verification mail",
		"email", email,
		"name", name,
		"link", m.apiURL+"/auth/verify?token="+token,
	)
	return nil
}
