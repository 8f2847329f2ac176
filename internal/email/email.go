package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them, used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API, used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// WelcomeBody is the registration email. Plain and short; the product
// tone lives in the frontend, not here.
func WelcomeBody(firstName string) (subject, body string) {
	subject = "Welcome to ApplyTrack"
	body = fmt.Sprintf(
		`<p>Hi %s,</p><p>Your account is ready. Add your first application and upload a resume to see match scores.</p>`,
		firstName,
	)
	return subject, body
}

// ReminderBody nudges the user about an application that has sat in
// "applied" past the follow-up cutoff.
func ReminderBody(firstName, company, position string, daysAgo int) (subject, body string) {
	subject = fmt.Sprintf("Follow up on your application at %s", company)
	body = fmt.Sprintf(
		`<p>Hi %s,</p><p>You applied for <strong>%s</strong> at <strong>%s</strong> %d days ago and it is still marked as applied. A short follow-up note can help.</p>`,
		firstName, position, company, daysAgo,
	)
	return subject, body
}
