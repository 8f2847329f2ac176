package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, user_id, company, position, status, job_type,
	location, salary, url, description, requirements, notes,
	applied_at, reminded_at, created_at, updated_at`

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	query := `
		INSERT INTO applications (
			user_id, company, position, status, job_type, location,
			salary, url, description, requirements, notes, applied_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query,
		app.UserID,
		app.Company,
		app.Position,
		app.Status,
		app.JobType,
		app.Location,
		app.Salary,
		app.URL,
		app.Description,
		app.Requirements,
		app.Notes,
		app.AppliedAt,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1`

	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *ApplicationRepository) List(ctx context.Context, input repository.ListApplicationsInput) ([]*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY applied_at DESC, id
		LIMIT $3 OFFSET $4`

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, query, input.UserID, string(input.Status), limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepository) Update(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	query := `
		UPDATE applications
		SET    company      = $3,
		       position     = $4,
		       status       = $5,
		       job_type     = $6,
		       location     = $7,
		       salary       = $8,
		       url          = $9,
		       description  = $10,
		       requirements = $11,
		       notes        = $12,
		       applied_at   = $13,
		       updated_at   = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query,
		app.ID, app.UserID,
		app.Company, app.Position, app.Status, app.JobType,
		app.Location, app.Salary, app.URL,
		app.Description, app.Requirements, app.Notes,
		app.AppliedAt,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, userID string) (*domain.StatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'applied'),
			COUNT(*) FILTER (WHERE status = 'interviewing'),
			COUNT(*) FILTER (WHERE status = 'offer'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'withdrawn')
		FROM applications
		WHERE user_id = $1`

	var c domain.StatusCounts
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&c.Total, &c.Applied, &c.Interviewing, &c.Offer, &c.Rejected, &c.Withdrawn)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	return &c, nil
}

func (r *ApplicationRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE status = 'applied'
		  AND applied_at < $1
		  AND reminded_at IS NULL
		ORDER BY applied_at
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale applications: %w", err)
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE applications SET reminded_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.UserID, &a.Company, &a.Position, &a.Status, &a.JobType,
		&a.Location, &a.Salary, &a.URL, &a.Description, &a.Requirements,
		&a.Notes, &a.AppliedAt, &a.RemindedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return &a, nil
}
