package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/internal/store"
	"github.com/MKhiriev/go-auth-portal/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &service.ValidationError{Fields: models.FieldErrors{}}, want: http.StatusBadRequest},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "wrapped expired session", err: fmt.Errorf("validate: %w", service.ErrSessionExpired), want: http.StatusUnauthorized},
		{name: "csrf", err: ErrCSRFTokenMismatch, want: http.StatusForbidden},
		{name: "duplicate username", err: store.ErrUsernameAlreadyExists, want: http.StatusConflict},
		{name: "query failure", err: fmt.Errorf("%w: timeout", store.ErrExecutingQuery), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("something else"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
