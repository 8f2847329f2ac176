package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrApplicationNotFound = errors.New("application not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrNoDocument          = errors.New("resume has no stored document")
	ErrNotOwner            = errors.New("resource belongs to another user")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenNotYetValid    = errors.New("token not yet valid")
	ErrTokenMalformed      = errors.New("token malformed or signature invalid")
)
