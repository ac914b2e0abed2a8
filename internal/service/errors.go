package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-auth-portal/models"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for unknown usernames, wrong
	// passwords and inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a valid session belongs to a user that
	// no longer exists or was deactivated.
	ErrUnauthorized = errors.New("unauthorized")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Field messages for collisions found in the user store.
const (
	MsgUsernameTaken = "A user with that username already exists."
	MsgEmailTaken    = "A user with that email address already exists."
)

// ValidationError carries user-correctable problems of a submitted form,
// keyed by field name.
type ValidationError struct {
	Fields models.FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newFieldError(field, message string) *ValidationError {
	errs := models.FieldErrors{}
	errs.Add(field, message)
	return &ValidationError{Fields: errs}
}
