// Package common defines shared constants and sentinel errors used across
// client and server layers of the to-do service. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// Credential errors. Both are unauthorized, but keep the reason so the
	// transport layer can report it.
	ErrUserNotFound    = fmt.Errorf("user not found: %w", ErrorUnauthorized)
	ErrInvalidPassword = fmt.Errorf("invalid password: %w", ErrorUnauthorized)

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
