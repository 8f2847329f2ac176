package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/usecase"
)

type fakeResumeRepo struct {
	create  func(ctx context.Context, resume *domain.Resume) (*domain.Resume, error)
	getByID func(ctx context.Context, id string) (*domain.Resume, error)
	list    func(ctx context.Context, userID string) ([]*domain.Resume, error)
	delete  func(ctx context.Context, id, userID string) error
}

func (r *fakeResumeRepo) Create(ctx context.Context, resume *domain.Resume) (*domain.Resume, error) {
	return r.create(ctx, resume)
}

func (r *fakeResumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	return r.getByID(ctx, id)
}

func (r *fakeResumeRepo) List(ctx context.Context, userID string) ([]*domain.Resume, error) {
	return r.list(ctx, userID)
}

func (r *fakeResumeRepo) Delete(ctx context.Context, id, userID string) error {
	return r.delete(ctx, id, userID)
}

func matchFixtures(resume *domain.Resume, app *domain.Application) (*fakeResumeRepo, *fakeApplicationRepo) {
	resumes := &fakeResumeRepo{
		getByID: func(_ context.Context, _ string) (*domain.Resume, error) {
			return resume, nil
		},
	}
	apps := &fakeApplicationRepo{
		getByID: func(_ context.Context, _ string) (*domain.Application, error) {
			return app, nil
		},
	}
	return resumes, apps
}

func TestMatchScore_TextResume(t *testing.T) {
	resumes, apps := matchFixtures(
		&domain.Resume{ID: "r-1", UserID: "user-1", Content: "JavaScript React leadership"},
		&domain.Application{ID: "a-1", UserID: "user-1", Requirements: "JavaScript, React, leadership"},
	)

	result, err := usecase.NewMatchUsecase(resumes, apps).Score(context.Background(), "user-1", "r-1", "a-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Percentage != 100 {
		t.Errorf("percentage = %d, want 100", result.Percentage)
	}
	if result.Estimated {
		t.Error("text resume must not be flagged estimated")
	}
}

func TestMatchScore_BinaryResume_UsesFallbackAndFlagsEstimate(t *testing.T) {
	key := "resumes/user-1/abc/resume.pdf"
	resumes, apps := matchFixtures(
		&domain.Resume{
			ID: "r-1", UserID: "user-1", Title: "My Resume",
			Format: domain.FormatPDF, Content: "", StorageKey: &key,
		},
		&domain.Application{ID: "a-1", UserID: "user-1", Requirements: "teamwork, communication"},
	)

	result, err := usecase.NewMatchUsecase(resumes, apps).Score(context.Background(), "user-1", "r-1", "a-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Estimated {
		t.Error("fallback-scored result must be flagged estimated")
	}
	if result.Percentage == 0 {
		t.Error("fallback template should cover common soft skills")
	}
}

func TestMatchScore_ForeignResume_ReturnsErrNotOwner(t *testing.T) {
	resumes, apps := matchFixtures(
		&domain.Resume{ID: "r-1", UserID: "user-5", Content: "text"},
		&domain.Application{ID: "a-1", UserID: "user-7"},
	)

	_, err := usecase.NewMatchUsecase(resumes, apps).Score(context.Background(), "user-7", "r-1", "a-1")
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestMatchScore_ForeignApplication_ReturnsErrNotOwner(t *testing.T) {
	resumes, apps := matchFixtures(
		&domain.Resume{ID: "r-1", UserID: "user-5", Content: "text"},
		&domain.Application{ID: "a-1", UserID: "user-9"},
	)

	_, err := usecase.NewMatchUsecase(resumes, apps).Score(context.Background(), "user-5", "r-1", "a-1")
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}
