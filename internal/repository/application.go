package repository

import (
	"context"
	"time"

	"github.com/applytrack/applytrack/internal/domain"
)

type ListApplicationsInput struct {
	UserID string
	Status domain.Status // empty = all statuses
	Limit  int
	Offset int
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	// GetByID is unscoped; callers enforce ownership against UserID.
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, input ListApplicationsInput) ([]*domain.Application, error)
	Update(ctx context.Context, app *domain.Application) (*domain.Application, error)
	Delete(ctx context.Context, id, userID string) error

	// CountByStatus feeds the dashboard.
	CountByStatus(ctx context.Context, userID string) (*domain.StatusCounts, error)

	// ListStale returns applications still "applied" whose applied_at is
	// older than cutoff and which have not been reminded yet.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Application, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}
