package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/applytrack/applytrack/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!"

func init() {
	gin.SetMode(gin.TestMode)
}

var testUser = &domain.User{
	ID:        "user-abc",
	Email:     "mw@test.local",
	FirstName: "Middle",
	LastName:  "Ware",
}

// newEngine builds a minimal gin engine with the Auth middleware
// protecting GET /protected. The handler writes the user id from the
// identity so we can assert it was attached.
func newEngine(verifier middleware.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(verifier), func(c *gin.Context) {
		id, _ := auth.IdentityFromContext(c.Request.Context())
		c.String(http.StatusOK, "%s", id.UserID)
	})
	return r
}

func do(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func rejectionCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Code
}

func TestAuth_MissingHeader_TokenMissing(t *testing.T) {
	w := do(t, newEngine(auth.NewTokenIssuer([]byte(testKey))), "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if code := rejectionCode(t, w); code != middleware.CodeTokenMissing {
		t.Errorf("code = %q, want %q", code, middleware.CodeTokenMissing)
	}
}

func TestAuth_NonBearerScheme_TokenMissing(t *testing.T) {
	w := do(t, newEngine(auth.NewTokenIssuer([]byte(testKey))), "Basic dXNlcjpwYXNz")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if code := rejectionCode(t, w); code != middleware.CodeTokenMissing {
		t.Errorf("code = %q, want %q", code, middleware.CodeTokenMissing)
	}
}

func TestAuth_GarbageToken_TokenInvalid(t *testing.T) {
	w := do(t, newEngine(auth.NewTokenIssuer([]byte(testKey))), "Bearer not.a.jwt")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if code := rejectionCode(t, w); code != middleware.CodeTokenInvalid {
		t.Errorf("code = %q, want %q", code, middleware.CodeTokenInvalid)
	}
}

func TestAuth_ExpiredToken_TokenExpired(t *testing.T) {
	expired := auth.NewTokenIssuerWithTTL([]byte(testKey), -time.Hour)
	raw, err := expired.Issue(testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := do(t, newEngine(auth.NewTokenIssuer([]byte(testKey))), "Bearer "+raw)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if code := rejectionCode(t, w); code != middleware.CodeTokenExpired {
		t.Errorf("code = %q, want %q", code, middleware.CodeTokenExpired)
	}
}

func TestAuth_WrongKey_TokenInvalid(t *testing.T) {
	foreign := auth.NewTokenIssuer([]byte("a-different-signing-key-32-char!"))
	raw, err := foreign.Issue(testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := do(t, newEngine(auth.NewTokenIssuer([]byte(testKey))), "Bearer "+raw)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if code := rejectionCode(t, w); code != middleware.CodeTokenInvalid {
		t.Errorf("code = %q, want %q", code, middleware.CodeTokenInvalid)
	}
}

func TestAuth_ValidToken_AttachesIdentity(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(testKey))
	raw, err := issuer.Issue(testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := do(t, newEngine(issuer), "Bearer "+raw)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != testUser.ID {
		t.Errorf("user id on context = %q, want %q", got, testUser.ID)
	}
}

func TestOptionalAuth_Anonymous_Passes(t *testing.T) {
	r := gin.New()
	r.GET("/open", middleware.OptionalAuth(auth.NewTokenIssuer([]byte(testKey))), func(c *gin.Context) {
		_, ok := auth.IdentityFromContext(c.Request.Context())
		c.String(http.StatusOK, "%t", ok)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "false" {
		t.Error("anonymous request should carry no identity")
	}
}

func TestOptionalAuth_ValidToken_AttachesIdentity(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(testKey))
	raw, err := issuer.Issue(testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := gin.New()
	r.GET("/open", middleware.OptionalAuth(issuer), func(c *gin.Context) {
		id, _ := auth.IdentityFromContext(c.Request.Context())
		c.String(http.StatusOK, "%s", id.Email)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)

	if got := w.Body.String(); got != testUser.Email {
		t.Errorf("email = %q, want %q", got, testUser.Email)
	}
}
