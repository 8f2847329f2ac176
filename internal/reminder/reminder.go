// Package reminder nudges users about applications that have sat in
// "applied" past the follow-up cutoff. One pass runs daily from the
// cron scheduler in main.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/applytrack/applytrack/internal/email"
	"github.com/applytrack/applytrack/internal/metrics"
	"github.com/applytrack/applytrack/internal/repository"
)

const batchSize = 100

type Reminder struct {
	applications repository.ApplicationRepository
	users        repository.UserRepository
	email        email.Sender
	after        time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

func New(applications repository.ApplicationRepository, users repository.UserRepository, emailSender email.Sender, after time.Duration, logger *slog.Logger) *Reminder {
	return &Reminder{
		applications: applications,
		users:        users,
		email:        emailSender,
		after:        after,
		logger:       logger.With("component", "reminder"),
		now:          time.Now,
	}
}

// Run performs one reminder pass. Failures on individual applications
// are logged and skipped; a skipped application is retried on the next
// pass because reminded_at is only set after a successful send.
func (r *Reminder) Run(ctx context.Context) {
	cutoff := r.now().Add(-r.after)

	stale, err := r.applications.ListStale(ctx, cutoff, batchSize)
	if err != nil {
		r.logger.ErrorContext(ctx, "list stale applications", "error", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	var sent int
	for _, app := range stale {
		user, err := r.users.FindByID(ctx, app.UserID)
		if err != nil {
			r.logger.ErrorContext(ctx, "find application owner", "application_id", app.ID, "error", err)
			continue
		}

		daysAgo := int(r.now().Sub(app.AppliedAt).Hours() / 24)
		subject, body := email.ReminderBody(user.FirstName, app.Company, app.Position, daysAgo)
		if err := r.email.Send(ctx, user.Email, subject, body); err != nil {
			r.logger.ErrorContext(ctx, "send reminder", "application_id", app.ID, "error", err)
			continue
		}

		if err := r.applications.MarkReminded(ctx, app.ID, r.now()); err != nil {
			r.logger.ErrorContext(ctx, "mark reminded", "application_id", app.ID, "error", err)
			continue
		}
		metrics.RemindersSentTotal.Inc()
		sent++
	}

	r.logger.InfoContext(ctx, "reminder pass finished", "stale", len(stale), "sent", sent)
}
