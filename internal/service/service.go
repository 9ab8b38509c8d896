// Package service holds the use cases behind the HTTP API. Services speak in
// the sentinel errors below; handlers translate them to status codes.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"expertbook/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("booking can no longer change status")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCategoryInUse      = errors.New("category still has experts")
	ErrDateNotInFuture    = errors.New("date must be in the future")
	ErrDateTooFar         = errors.New("date is too far ahead")
)

// MaxBookingAheadMonths is how far ahead a booking may be placed.
const MaxBookingAheadMonths = 3

const minPasswordLen = 8

var validate = validator.New()

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound maps the repository sentinel onto the service one, naming what
// was missing.
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("email is invalid")
	}
	return nil
}

// requireFields takes name/value pairs.
func requireFields(kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if strings.TrimSpace(kv[i+1]) == "" {
			return invalid("%s is required", kv[i])
		}
	}
	return nil
}

// checkSlot enforces the booking window: strictly after now and at most
// MaxBookingAheadMonths ahead.
func checkSlot(at, now time.Time) error {
	if at.IsZero() {
		return invalid("date_time is required")
	}
	if !at.After(now) {
		return ErrDateNotInFuture
	}
	if at.After(now.AddDate(0, MaxBookingAheadMonths, 0)) {
		return ErrDateTooFar
	}
	return nil
}
