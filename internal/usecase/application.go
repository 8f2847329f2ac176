package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/repository"
)

type ApplicationUsecase struct {
	repo repository.ApplicationRepository
}

func NewApplicationUsecase(repo repository.ApplicationRepository) *ApplicationUsecase {
	return &ApplicationUsecase{repo: repo}
}

type CreateApplicationInput struct {
	UserID       string
	Company      string
	Position     string
	Status       domain.Status
	JobType      domain.JobType
	Location     *string
	Salary       *string
	URL          *string
	Description  string
	Requirements string
	Notes        string
	AppliedAt    time.Time
}

func (u *ApplicationUsecase) Create(ctx context.Context, input CreateApplicationInput) (*domain.Application, error) {
	if input.Status == "" {
		input.Status = domain.StatusApplied
	}
	if input.JobType == "" {
		input.JobType = domain.JobTypeFullTime
	}
	if input.AppliedAt.IsZero() {
		input.AppliedAt = time.Now()
	}

	app, err := u.repo.Create(ctx, &domain.Application{
		UserID:       input.UserID,
		Company:      input.Company,
		Position:     input.Position,
		Status:       input.Status,
		JobType:      input.JobType,
		Location:     input.Location,
		Salary:       input.Salary,
		URL:          input.URL,
		Description:  input.Description,
		Requirements: input.Requirements,
		Notes:        input.Notes,
		AppliedAt:    input.AppliedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// GetByID fetches without scoping; the transport layer compares the
// caller's identity against the returned UserID.
func (u *ApplicationUsecase) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (u *ApplicationUsecase) List(ctx context.Context, input repository.ListApplicationsInput) ([]*domain.Application, error) {
	apps, err := u.repo.List(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

type UpdateApplicationInput struct {
	ID           string
	UserID       string
	Company      string
	Position     string
	Status       domain.Status
	JobType      domain.JobType
	Location     *string
	Salary       *string
	URL          *string
	Description  string
	Requirements string
	Notes        string
	AppliedAt    time.Time
}

// Update replaces the mutable fields wholesale. The repository scopes
// the write by user id, so updating someone else's application comes
// back as not-found.
func (u *ApplicationUsecase) Update(ctx context.Context, input UpdateApplicationInput) (*domain.Application, error) {
	existing, err := u.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if existing.UserID != input.UserID {
		return nil, domain.ErrNotOwner
	}

	existing.Company = input.Company
	existing.Position = input.Position
	existing.Status = input.Status
	existing.JobType = input.JobType
	existing.Location = input.Location
	existing.Salary = input.Salary
	existing.URL = input.URL
	existing.Description = input.Description
	existing.Requirements = input.Requirements
	existing.Notes = input.Notes
	if !input.AppliedAt.IsZero() {
		existing.AppliedAt = input.AppliedAt
	}

	updated, err := u.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return updated, nil
}

func (u *ApplicationUsecase) Delete(ctx context.Context, id, userID string) error {
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get application: %w", err)
	}
	if existing.UserID != userID {
		return domain.ErrNotOwner
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

func (u *ApplicationUsecase) Stats(ctx context.Context, userID string) (*domain.StatusCounts, error) {
	counts, err := u.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("application stats: %w", err)
	}
	return counts, nil
}
