package service

import (
	"errors"
	"fmt"
	"strings"

	"stocktracker/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps every input rejection
	ErrValidation = errors.New("validation failed")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFoundOr translates gorm's missing-row error, wrapping anything else.
func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", entity, err)
}

// actor resolves the name recorded in the audit trail.
func actor(user string) string {
	if u := strings.TrimSpace(user); u != "" {
		return u
	}
	return model.DefaultAuditUser
}
