package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/match"
	"github.com/applytrack/applytrack/internal/metrics"
	"github.com/applytrack/applytrack/internal/repository"
)

type MatchUsecase struct {
	resumes      repository.ResumeRepository
	applications repository.ApplicationRepository
}

func NewMatchUsecase(resumes repository.ResumeRepository, applications repository.ApplicationRepository) *MatchUsecase {
	return &MatchUsecase{resumes: resumes, applications: applications}
}

// Score loads both records scoped by owner and runs the scorer. When
// the resume's text could not be extracted (binary upload), the score
// is computed from deterministic fallback content and the result is
// flagged Estimated.
func (u *MatchUsecase) Score(ctx context.Context, userID, resumeID, applicationID string) (*match.Result, error) {
	resume, err := u.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("get resume: %w", err)
	}
	if resume.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	app, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	content := resume.Content
	estimated := false
	if strings.TrimSpace(content) == "" && resume.StorageKey != nil {
		content = match.FallbackContent(string(resume.Format), resume.Title)
		estimated = true
	}

	result := match.Score(content, match.JobFields{
		Position:     app.Position,
		JobType:      string(app.JobType),
		Description:  app.Description,
		Requirements: app.Requirements,
		Notes:        app.Notes,
	})
	result.Estimated = estimated

	if estimated {
		metrics.MatchComputationsTotal.WithLabelValues("fallback").Inc()
	} else {
		metrics.MatchComputationsTotal.WithLabelValues("real").Inc()
	}
	metrics.MatchScoreDistribution.Observe(float64(result.Percentage))

	return &result, nil
}
