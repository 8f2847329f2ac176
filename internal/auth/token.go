package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/applytrack/applytrack/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// Tokens live for a week; logout is client-side deletion only.
	// There is no revocation list; a token stays valid until expiry.
	DefaultTokenTTL = 7 * 24 * time.Hour

	tokenIssuer   = "applytrack"
	tokenAudience = "applytrack-api"
)

// Claims are the identity claims carried by every issued token.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: DefaultTokenTTL, now: time.Now}
}

// NewTokenIssuerWithTTL exists for tests that need short-lived tokens.
func NewTokenIssuerWithTTL(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the user with issuer, audience and expiry set.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	claims := Claims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, audience and time claims.
//
// Errors map onto a small taxonomy so the transport layer can tell the
// client why a token was rejected: domain.ErrTokenExpired prompts a
// quiet re-login, domain.ErrTokenNotYetValid a clock check, and
// domain.ErrTokenMalformed covers everything that should never happen
// to a token we issued (garbage, wrong signature, wrong issuer).
func (i *TokenIssuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return i.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, domain.ErrTokenNotYetValid
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
