package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Machine-readable rejection codes. "expired" is deliberately distinct
// from "invalid": an expired token should prompt a quiet re-login, not
// a security alarm.
const (
	CodeTokenMissing     = "token_missing"
	CodeTokenExpired     = "token_expired"
	CodeTokenNotYetValid = "token_not_yet_valid"
	CodeTokenInvalid     = "token_invalid"
)

const errUnauthorized = "Unauthorized"

// TokenVerifier is the subset of auth.TokenIssuer the middleware needs.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Auth validates a Bearer JWT and attaches the caller's identity to the
// request context. Requests without a valid token are rejected with a
// code naming the reason.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			reject(c, CodeTokenMissing)
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			reject(c, rejectionCode(err))
			return
		}

		attachIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// proceeds anonymously otherwise. It never rejects.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := verifier.Verify(raw); err == nil {
				attachIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

func attachIdentity(c *gin.Context, claims *auth.Claims) {
	ctx := auth.WithIdentity(c.Request.Context(), auth.Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	})
	c.Request = c.Request.WithContext(ctx)
}

func rejectionCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return CodeTokenExpired
	case errors.Is(err, domain.ErrTokenNotYetValid):
		return CodeTokenNotYetValid
	default:
		return CodeTokenInvalid
	}
}

func reject(c *gin.Context, code string) {
	metrics.TokenRejectionsTotal.WithLabelValues(code).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": errUnauthorized,
		"code":  code,
	})
}
