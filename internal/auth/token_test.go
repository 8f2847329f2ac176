package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTestKey = "token-test-secret-at-least-32ch!"

var tokenTestUser = &domain.User{
	ID:        "11111111-1111-1111-1111-111111111111",
	Email:     "test@example.com",
	FirstName: "Test",
	LastName:  "User",
}

func TestIssueVerify_RoundTripClaims(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(tokenTestKey))

	raw, err := issuer.Issue(tokenTestUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.Subject != tokenTestUser.ID {
		t.Errorf("sub = %q, want %q", claims.Subject, tokenTestUser.ID)
	}
	if claims.Email != tokenTestUser.Email {
		t.Errorf("email = %q, want %q", claims.Email, tokenTestUser.Email)
	}
	if claims.FirstName != "Test" || claims.LastName != "User" {
		t.Errorf("name claims = %q %q, want Test User", claims.FirstName, claims.LastName)
	}
}

func TestIssue_ExpirySevenDaysOut(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte(tokenTestKey))

	raw, err := issuer.Issue(tokenTestUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	want := time.Now().Add(auth.DefaultTokenTTL)
	got := claims.ExpiresAt.Time
	if got.Before(want.Add(-time.Minute)) || got.After(want.Add(time.Minute)) {
		t.Errorf("exp = %v, want about %v", got, want)
	}
}

func TestVerify_Expired_ReturnsErrTokenExpired(t *testing.T) {
	issuer := auth.NewTokenIssuerWithTTL([]byte(tokenTestKey), -time.Hour)

	raw, err := issuer.Issue(tokenTestUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = auth.NewTokenIssuer([]byte(tokenTestKey)).Verify(raw)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_WrongKey_ReturnsErrTokenMalformed(t *testing.T) {
	raw, err := auth.NewTokenIssuer([]byte("a-different-signing-key-32-char!")).Issue(tokenTestUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = auth.NewTokenIssuer([]byte(tokenTestKey)).Verify(raw)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestVerify_Garbage_ReturnsErrTokenMalformed(t *testing.T) {
	_, err := auth.NewTokenIssuer([]byte(tokenTestKey)).Verify("not.a.jwt")
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestVerify_NotYetValid_ReturnsErrTokenNotYetValid(t *testing.T) {
	// Tokens we issue carry no nbf claim, so craft one by hand with the
	// right issuer and audience but a future validity start.
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   tokenTestUser.ID,
		Issuer:    "applytrack",
		Audience:  jwt.ClaimStrings{"applytrack-api"},
		NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
	})
	raw, err := token.SignedString([]byte(tokenTestKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = auth.NewTokenIssuer([]byte(tokenTestKey)).Verify(raw)
	if !errors.Is(err, domain.ErrTokenNotYetValid) {
		t.Errorf("err = %v, want ErrTokenNotYetValid", err)
	}
}

func TestVerify_WrongIssuer_Rejected(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   tokenTestUser.ID,
		Issuer:    "someone-else",
		Audience:  jwt.ClaimStrings{"applytrack-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	raw, err := token.SignedString([]byte(tokenTestKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.NewTokenIssuer([]byte(tokenTestKey)).Verify(raw); err == nil {
		t.Error("token with foreign issuer accepted")
	}
}

func TestVerify_MissingSubject_Rejected(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "applytrack",
		Audience:  jwt.ClaimStrings{"applytrack-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	raw, err := token.SignedString([]byte(tokenTestKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = auth.NewTokenIssuer([]byte(tokenTestKey)).Verify(raw)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}
