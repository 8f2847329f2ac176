package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resumeColumns = `id, user_id, title, format, content,
	storage_key, file_name, size_bytes, created_at, updated_at`

type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) (*domain.Resume, error) {
	query := `
		INSERT INTO resumes (user_id, title, format, content, storage_key, file_name, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + resumeColumns

	row := r.pool.QueryRow(ctx, query,
		resume.UserID,
		resume.Title,
		resume.Format,
		resume.Content,
		resume.StorageKey,
		resume.FileName,
		resume.SizeBytes,
	)
	return scanResume(row)
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.pool.QueryRow(ctx, query, id))
}

func (r *ResumeRepository) List(ctx context.Context, userID string) ([]*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + `
		FROM resumes
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []*domain.Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

func (r *ResumeRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(
		&res.ID, &res.UserID, &res.Title, &res.Format, &res.Content,
		&res.StorageKey, &res.FileName, &res.SizeBytes,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	return &res, nil
}
