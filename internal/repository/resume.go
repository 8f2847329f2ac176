package repository

import (
	"context"

	"github.com/applytrack/applytrack/internal/domain"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) (*domain.Resume, error)
	// GetByID is unscoped; callers enforce ownership against UserID.
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	List(ctx context.Context, userID string) ([]*domain.Resume, error)
	Delete(ctx context.Context, id, userID string) error
}
