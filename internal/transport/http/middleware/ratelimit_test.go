package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/applytrack/applytrack/internal/ratelimit"
	"github.com/applytrack/applytrack/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int, error) {
	return 0, errors.New("store down")
}

func (failingStore) Sweep(context.Context) error { return nil }

func newLimitedEngine(store ratelimit.Store, limit int) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.POST("/login", middleware.RateLimit(store, limit, time.Minute, logger), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func post(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AllowsUpToLimit(t *testing.T) {
	r := newLimitedEngine(ratelimit.NewMemoryStore(), 3)

	for i := 0; i < 3; i++ {
		if w := post(r, "/login"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	r := newLimitedEngine(ratelimit.NewMemoryStore(), 2)

	post(r, "/login")
	post(r, "/login")
	w := post(r, "/login")

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func TestRateLimit_StoreFailure_FailsOpen(t *testing.T) {
	r := newLimitedEngine(failingStore{}, 1)

	for i := 0; i < 5; i++ {
		if w := post(r, "/login"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200 when the store is down", i+1, w.Code)
		}
	}
}
