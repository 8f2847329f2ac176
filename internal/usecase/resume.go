package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/objectstore"
	"github.com/applytrack/applytrack/internal/repository"
	"github.com/google/uuid"
)

type ResumeUsecase struct {
	repo  repository.ResumeRepository
	store objectstore.Store
}

func NewResumeUsecase(repo repository.ResumeRepository, store objectstore.Store) *ResumeUsecase {
	return &ResumeUsecase{repo: repo, store: store}
}

type CreateResumeInput struct {
	UserID string
	Title  string
	Format domain.ResumeFormat

	// Content is used when the resume is submitted as plain text.
	Content string

	// Data carries an uploaded document. When set, the original bytes
	// go to the object store and Content is extracted when possible.
	Data        []byte
	FileName    string
	ContentType string
}

// Create stores a resume. Text is extracted only from plain-text
// uploads; binary documents keep an empty Content and get fallback
// text at scoring time, a documented approximation, not an error.
func (u *ResumeUsecase) Create(ctx context.Context, input CreateResumeInput) (*domain.Resume, error) {
	resume := &domain.Resume{
		UserID:  input.UserID,
		Title:   input.Title,
		Format:  input.Format,
		Content: input.Content,
	}

	if len(input.Data) > 0 {
		key := fmt.Sprintf("resumes/%s/%s/%s", input.UserID, uuid.NewString(), input.FileName)
		if err := u.store.Put(ctx, key, input.Data, input.ContentType); err != nil {
			return nil, fmt.Errorf("store resume document: %w", err)
		}

		size := int64(len(input.Data))
		resume.StorageKey = &key
		resume.FileName = &input.FileName
		resume.SizeBytes = &size

		if resume.Content == "" && input.Format == domain.FormatText {
			resume.Content = extractText(input.Data)
		}
	}

	created, err := u.repo.Create(ctx, resume)
	if err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return created, nil
}

// GetByID fetches without scoping; the transport layer compares the
// caller's identity against the returned UserID.
func (u *ResumeUsecase) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	resume, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get resume: %w", err)
	}
	return resume, nil
}

func (u *ResumeUsecase) List(ctx context.Context, userID string) ([]*domain.Resume, error) {
	resumes, err := u.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

func (u *ResumeUsecase) Delete(ctx context.Context, id, userID string) error {
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get resume: %w", err)
	}
	if existing.UserID != userID {
		return domain.ErrNotOwner
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}

// DownloadURL presigns a download of the original document. Resumes
// created from plain text have nothing stored and return ErrNoDocument.
func (u *ResumeUsecase) DownloadURL(ctx context.Context, id, userID string) (string, error) {
	resume, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get resume: %w", err)
	}
	if resume.UserID != userID {
		return "", domain.ErrNotOwner
	}
	if resume.StorageKey == nil {
		return "", domain.ErrNoDocument
	}

	url, err := u.store.PresignGet(ctx, *resume.StorageKey, objectstore.DefaultPresignTTL)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}

// extractText accepts the upload as resume text when it is valid UTF-8
// without NUL bytes; anything else is treated as unparsable.
func extractText(data []byte) string {
	if !utf8.Valid(data) || strings.ContainsRune(string(data), 0) {
		return ""
	}
	return string(data)
}
