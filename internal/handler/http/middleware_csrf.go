package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-auth-portal/internal/app"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/utils"
)

const (
	csrfFormField = "csrf_token"
	csrfHeader    = "X-CSRF-Token"

	// maxFormBytes bounds url-encoded bodies parsed by the CSRF check and
	// the form handlers.
	maxFormBytes = 64 << 10
)

// csrf guards every unsafe request with the double-submit scheme: the
// secret lives in a cookie and the request must carry the token derived
// from it, either as the csrf_token form field or the X-CSRF-Token header.
//
// Safe requests without a usable secret get a fresh one. The form token of
// the current secret is put into the request context for the templates.
func (h *Handler) csrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		csrfService := h.services.CSRFService

		secret := h.csrfSecret(r)
		valid := csrfService.ValidSecret(secret)

		if isSafeMethod(r.Method) {
			if !valid {
				newSecret, err := csrfService.NewSecret()
				if err != nil {
					log.Err(err).Msg("error generating CSRF secret")
					h.fail(w, r, err)
					return
				}
				h.setCSRFCookie(w, newSecret)
				secret = newSecret
			}
		} else {
			if !valid {
				log.Warn().Err(ErrCSRFCookieMissing).Str("method", r.Method).Str("uri", r.RequestURI).Send()
				h.renderError(w, r, http.StatusForbidden, app.MsgCSRFFailed)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
			token := r.Header.Get(csrfHeader)
			if token == "" {
				token = r.PostFormValue(csrfFormField)
			}
			if !csrfService.Verify(secret, token) {
				log.Warn().Err(ErrCSRFTokenMismatch).Str("method", r.Method).Str("uri", r.RequestURI).Send()
				h.renderError(w, r, http.StatusForbidden, app.MsgCSRFFailed)
				return
			}
		}

		ctx := context.WithValue(r.Context(), utils.CSRFTokenCtxKey, csrfService.Token(secret))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rotateCSRF replaces the CSRF secret, typically right after the user
// identity changed.
func (h *Handler) rotateCSRF(w http.ResponseWriter, r *http.Request) {
	secret, err := h.services.CSRFService.NewSecret()
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error rotating CSRF secret")
		return
	}
	h.setCSRFCookie(w, secret)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
