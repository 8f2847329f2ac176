package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/repository"
	"github.com/applytrack/applytrack/internal/usecase"
	"github.com/gin-gonic/gin"
)

type applicationUsecaser interface {
	Create(ctx context.Context, input usecase.CreateApplicationInput) (*domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, input repository.ListApplicationsInput) ([]*domain.Application, error)
	Update(ctx context.Context, input usecase.UpdateApplicationInput) (*domain.Application, error)
	Delete(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*domain.StatusCounts, error)
}

type ApplicationHandler struct {
	uc     applicationUsecaser
	logger *slog.Logger
}

func NewApplicationHandler(uc applicationUsecaser, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, logger: logger.With("component", "application_handler")}
}

type applicationRequest struct {
	Company      string         `json:"company"      binding:"required,max=256"`
	Position     string         `json:"position"     binding:"required,max=256"`
	Status       domain.Status  `json:"status"       binding:"omitempty,oneof=applied interviewing offer rejected withdrawn"`
	JobType      domain.JobType `json:"job_type"     binding:"omitempty,oneof=full-time part-time contract internship remote"`
	Location     *string        `json:"location"     binding:"omitempty,max=256"`
	Salary       *string        `json:"salary"       binding:"omitempty,max=128"`
	URL          *string        `json:"url"          binding:"omitempty,url,max=2048"`
	Description  string         `json:"description"  binding:"max=20000"`
	Requirements string         `json:"requirements" binding:"max=20000"`
	Notes        string         `json:"notes"        binding:"max=20000"`
	AppliedAt    time.Time      `json:"applied_at"`
}

type applicationResponse struct {
	ID           string         `json:"id"`
	Company      string         `json:"company"`
	Position     string         `json:"position"`
	Status       domain.Status  `json:"status"`
	JobType      domain.JobType `json:"job_type"`
	Location     *string        `json:"location,omitempty"`
	Salary       *string        `json:"salary,omitempty"`
	URL          *string        `json:"url,omitempty"`
	Description  string         `json:"description"`
	Requirements string         `json:"requirements"`
	Notes        string         `json:"notes"`
	AppliedAt    time.Time      `json:"applied_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:           a.ID,
		Company:      a.Company,
		Position:     a.Position,
		Status:       a.Status,
		JobType:      a.JobType,
		Location:     a.Location,
		Salary:       a.Salary,
		URL:          a.URL,
		Description:  a.Description,
		Requirements: a.Requirements,
		Notes:        a.Notes,
		AppliedAt:    a.AppliedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// POST /applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.uc.Create(c.Request.Context(), usecase.CreateApplicationInput{
		UserID:       identity.UserID,
		Company:      req.Company,
		Position:     req.Position,
		Status:       req.Status,
		JobType:      req.JobType,
		Location:     req.Location,
		Salary:       req.Salary,
		URL:          req.URL,
		Description:  req.Description,
		Requirements: req.Requirements,
		Notes:        req.Notes,
		AppliedAt:    req.AppliedAt,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create application", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// GET /applications
func (h *ApplicationHandler) List(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	var query struct {
		Status domain.Status `form:"status" binding:"omitempty,oneof=applied interviewing offer rejected withdrawn"`
		Limit  int           `form:"limit"  binding:"omitempty,min=1,max=100"`
		Offset int           `form:"offset" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apps, err := h.uc.List(c.Request.Context(), repository.ListApplicationsInput{
		UserID: identity.UserID,
		Status: query.Status,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list applications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	c.JSON(http.StatusOK, gin.H{"applications": out})
}

// GET /applications/:id
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())
	appID := c.Param("id")

	app, err := h.uc.GetByID(c.Request.Context(), appID)
	if err != nil {
		h.respondError(c, err, "get application")
		return
	}
	if !identity.Owns(app.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden, "code": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}

// PUT /applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())
	appID := c.Param("id")

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = domain.StatusApplied
	}
	jobType := req.JobType
	if jobType == "" {
		jobType = domain.JobTypeFullTime
	}

	app, err := h.uc.Update(c.Request.Context(), usecase.UpdateApplicationInput{
		ID:           appID,
		UserID:       identity.UserID,
		Company:      req.Company,
		Position:     req.Position,
		Status:       status,
		JobType:      jobType,
		Location:     req.Location,
		Salary:       req.Salary,
		URL:          req.URL,
		Description:  req.Description,
		Requirements: req.Requirements,
		Notes:        req.Notes,
		AppliedAt:    req.AppliedAt,
	})
	if err != nil {
		h.respondError(c, err, "update application")
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}

// DELETE /applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	if err := h.uc.Delete(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		h.respondError(c, err, "delete application")
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /applications/stats
func (h *ApplicationHandler) Stats(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	counts, err := h.uc.Stats(c.Request.Context(), identity.UserID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "application stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        counts.Total,
		"applied":      counts.Applied,
		"interviewing": counts.Interviewing,
		"offer":        counts.Offer,
		"rejected":     counts.Rejected,
		"withdrawn":    counts.Withdrawn,
	})
}

func (h *ApplicationHandler) respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errApplicationNotFound})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden, "code": "forbidden"})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
