package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrUnauthorized:       http.StatusUnauthorized,
	service.ErrSessionNotFound:    http.StatusUnauthorized,
	service.ErrSessionExpired:     http.StatusUnauthorized,

	ErrCSRFCookieMissing: http.StatusForbidden,
	ErrCSRFTokenMismatch: http.StatusForbidden,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrAlreadyExists:         http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrSessionNotFound:       http.StatusUnauthorized,

	store.ErrSessionNotSaved:    http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrEncodingSession:    http.StatusInternalServerError,
	store.ErrDecodingSession:    http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
