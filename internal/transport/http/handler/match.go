package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/match"
	"github.com/gin-gonic/gin"
)

type matchUsecaser interface {
	Score(ctx context.Context, userID, resumeID, applicationID string) (*match.Result, error)
}

type MatchHandler struct {
	uc     matchUsecaser
	logger *slog.Logger
}

func NewMatchHandler(uc matchUsecaser, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{uc: uc, logger: logger.With("component", "match_handler")}
}

type matchRequest struct {
	ResumeID      string `json:"resume_id"      binding:"required,uuid"`
	ApplicationID string `json:"application_id" binding:"required,uuid"`
}

// POST /match
func (h *MatchHandler) Score(c *gin.Context) {
	identity, _ := auth.IdentityFromContext(c.Request.Context())

	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.uc.Score(c.Request.Context(), identity.UserID, req.ResumeID, req.ApplicationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResumeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errResumeNotFound})
		case errors.Is(err, domain.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errApplicationNotFound})
		case errors.Is(err, domain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": errForbidden, "code": "forbidden"})
		default:
			h.logger.ErrorContext(c.Request.Context(), "match score", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
