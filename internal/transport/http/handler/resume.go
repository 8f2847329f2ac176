package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/usecase"
	"github.com/gin-gonic/gin"
)

const maxResumeUploadBytes = 10 << 20 // 10 MiB

type resumeUsecaser interface {
	Create(ctx context.Context, input usecase.CreateResumeInput) (*domain.Resume, error)
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	List(ctx context.Context, userID string) ([]*domain.Resume, error)
	Delete(ctx context.Context, id, userID string) error
	DownloadURL(ctx context.Context, id, userID string) (string, error)
}

type ResumeHandler struct {
	uc     resumeUsecaser
	logger *slog.Logger
}

func NewResumeHandler(uc resumeUsecaser, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{uc: uc, logger: logger.With("component", "resume_handler")}
}

type createResumeRequest struct {
	Title   string              `json:"title"   binding:"required,max=256"`
	Format  domain.ResumeFormat `json:"format"  binding:"omitempty,oneof=text pdf docx"`
	Content string              `json:"content" binding:"max=200000"`
}

type resumeResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Format      domain.ResumeFormat `json:"format"`
	Content     string              `json:"content"`
	FileName    *string             `json:"file_name,omitempty"`
	SizeBytes   *int64              `json:"size_bytes,omitempty"`
	HasDocument bool                `json:"has_document"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toResumeResponse(r *domain.Resume) resumeResponse {
	return resumeResponse{
		ID:          r.ID,
		Title:       r.Title,
		Format:      r.Format,
		Content:     r.Content,
		FileName:    r.FileName,
		SizeBytes:   r.SizeBytes,
		HasDocument: r.StorageKey != nil,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// POST /resumes
// Accepts either a JSON body with inline text or a multipart form with
// a "file" part for document uploads.
func (h *ResumeHandler) Create(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	var input usecase.CreateResumeInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		parsed, err := h.parseUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input = *parsed
	} else {
		var req createResumeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Format == "" {
			req.Format = domain.FormatText
		}
		input = usecase.CreateResumeInput{
			Title:   req.Title,
			Format:  req.Format,
			Content: req.Content,
		}
	}
	input.UserID = identity.UserID

	resume, err := h.uc.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create resume", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toResumeResponse(resume))
}

func (h *ResumeHandler) parseUpload(c *gin.Context) (*usecase.CreateResumeInput, error) {
	title := c.PostForm("title")
	if title == "" {
		return nil, errors.New("title is required")
	}

	format := domain.ResumeFormat(c.PostForm("format"))
	switch format {
	case domain.FormatText, domain.FormatPDF, domain.FormatDocx:
	case "":
		format = domain.FormatText
	default:
		return nil, errors.New("format must be one of text, pdf, docx")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("file is required")
	}
	if fileHeader.Size > maxResumeUploadBytes {
		return nil, errors.New("file exceeds the 10 MiB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxResumeUploadBytes))
	if err != nil {
		return nil, errors.New("could not read uploaded file")
	}

	return &usecase.CreateResumeInput{
		Title:       title,
		Format:      format,
		Data:        data,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// GET /resumes
func (h *ResumeHandler) List(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	resumes, err := h.uc.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list resumes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]resumeResponse, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, toResumeResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"resumes": out})
}

// GET /resumes/:id
func (h *ResumeHandler) GetByID(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	resume, err := h.uc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "get resume")
		return
	}
	if !identity.Owns(resume.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden, "code": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, toResumeResponse(resume))
}

// DELETE /resumes/:id
func (h *ResumeHandler) Delete(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	if err := h.uc.Delete(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		h.respondError(c, err, "delete resume")
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /resumes/:id/download
func (h *ResumeHandler) Download(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	url, err := h.uc.DownloadURL(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNoDocument})
			return
		}
		h.respondError(c, err, "presign resume download")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ResumeHandler) respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrResumeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errResumeNotFound})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden, "code": "forbidden"})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
