package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/repository"
	"github.com/applytrack/applytrack/internal/transport/http/handler"
	"github.com/applytrack/applytrack/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeApplicationUsecase struct {
	create  func(ctx context.Context, input usecase.CreateApplicationInput) (*domain.Application, error)
	getByID func(ctx context.Context, id string) (*domain.Application, error)
	list    func(ctx context.Context, input repository.ListApplicationsInput) ([]*domain.Application, error)
	update  func(ctx context.Context, input usecase.UpdateApplicationInput) (*domain.Application, error)
	delete  func(ctx context.Context, id, userID string) error
	stats   func(ctx context.Context, userID string) (*domain.StatusCounts, error)
}

func (f *fakeApplicationUsecase) Create(ctx context.Context, input usecase.CreateApplicationInput) (*domain.Application, error) {
	return f.create(ctx, input)
}

func (f *fakeApplicationUsecase) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	return f.getByID(ctx, id)
}

func (f *fakeApplicationUsecase) List(ctx context.Context, input repository.ListApplicationsInput) ([]*domain.Application, error) {
	return f.list(ctx, input)
}

func (f *fakeApplicationUsecase) Update(ctx context.Context, input usecase.UpdateApplicationInput) (*domain.Application, error) {
	return f.update(ctx, input)
}

func (f *fakeApplicationUsecase) Delete(ctx context.Context, id, userID string) error {
	return f.delete(ctx, id, userID)
}

func (f *fakeApplicationUsecase) Stats(ctx context.Context, userID string) (*domain.StatusCounts, error) {
	return f.stats(ctx, userID)
}

// identityMiddleware stands in for the auth middleware and attaches a
// fixed caller identity.
func identityMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), auth.Identity{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newApplicationEngine(uc *fakeApplicationUsecase, callerID string) *gin.Engine {
	h := handler.NewApplicationHandler(uc, discardLogger())
	r := gin.New()
	g := r.Group("/applications", identityMiddleware(callerID))
	g.GET("/stats", h.Stats)
	g.GET("/:id", h.GetByID)
	g.DELETE("/:id", h.Delete)
	return r
}

func TestGetApplication_Owner_Returns200(t *testing.T) {
	uc := &fakeApplicationUsecase{
		getByID: func(_ context.Context, id string) (*domain.Application, error) {
			return &domain.Application{ID: id, UserID: "user-5", Company: "Acme", AppliedAt: time.Now()}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/applications/app-1", nil)
	newApplicationEngine(uc, "user-5").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestGetApplication_NotOwner_Returns403(t *testing.T) {
	// The record exists and belongs to user-5; user-7 asks for it.
	uc := &fakeApplicationUsecase{
		getByID: func(_ context.Context, id string) (*domain.Application, error) {
			return &domain.Application{ID: id, UserID: "user-5"}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/applications/app-1", nil)
	newApplicationEngine(uc, "user-7").ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestGetApplication_Missing_Returns404(t *testing.T) {
	uc := &fakeApplicationUsecase{
		getByID: func(_ context.Context, _ string) (*domain.Application, error) {
			return nil, domain.ErrApplicationNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/applications/missing", nil)
	newApplicationEngine(uc, "user-5").ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteApplication_NotOwner_Returns403(t *testing.T) {
	uc := &fakeApplicationUsecase{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrNotOwner
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/applications/app-1", nil)
	newApplicationEngine(uc, "user-7").ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestDeleteApplication_Owner_Returns204(t *testing.T) {
	uc := &fakeApplicationUsecase{
		delete: func(_ context.Context, id, userID string) error {
			if id != "app-1" || userID != "user-5" {
				t.Errorf("delete(%q, %q), want (app-1, user-5)", id, userID)
			}
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/applications/app-1", nil)
	newApplicationEngine(uc, "user-5").ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestApplicationStats_ReturnsCounts(t *testing.T) {
	uc := &fakeApplicationUsecase{
		stats: func(_ context.Context, userID string) (*domain.StatusCounts, error) {
			if userID != "user-5" {
				t.Errorf("stats for %q, want user-5", userID)
			}
			return &domain.StatusCounts{Total: 3, Applied: 2, Offer: 1}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/applications/stats", nil)
	newApplicationEngine(uc, "user-5").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	for _, want := range []string{`"total":3`, `"applied":2`, `"offer":1`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("body %s missing %s", w.Body.String(), want)
		}
	}
}
