package lib

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Domain errors
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotVerified         = errors.New("email not verified")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrExpiredCode         = errors.New("expired verification code")
	ErrForbiddenTransition = errors.New("status transition not allowed")
	ErrHeroLimit           = errors.New("hero image limit reached")
)

func MapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
