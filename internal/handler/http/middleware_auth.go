package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/internal/utils"
)

// requireLogin is the access-control gate in front of protected pages.
//
// It resolves the session cookie through [service.AuthService.Authenticate].
// A missing, unknown or expired session, as well as a session of a user that
// is gone or deactivated, clears the cookie and redirects (302) to the login
// page with the requested URI in "next". Other failures render a 500 page.
//
// On success the user, the session and the user ID are stored in the request
// context (see [utils.WithAuthenticated]) and the response is marked as not
// cacheable.
func (h *Handler) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token := h.sessionToken(r)
		if token == "" {
			log.Debug().Str("uri", r.RequestURI).Msg("no session cookie")
			h.redirectToLogin(w, r)
			return
		}

		ctx := r.Context()
		user, session, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionNotFound),
				errors.Is(err, service.ErrSessionExpired),
				errors.Is(err, service.ErrUnauthorized):
				log.Debug().Err(err).Msg("request is not authenticated")
				h.clearSessionCookie(w)
				h.redirectToLogin(w, r)
				return
			default:
				log.Err(err).Msg("error occurred during session validation")
				h.fail(w, r, err)
				return
			}
		}

		utils.SetNoStore(w)
		next.ServeHTTP(w, r.WithContext(utils.WithAuthenticated(ctx, user, session)))
	})
}

// redirectToLogin sends the client to the login page, remembering the
// requested resource so the login handler can resume it.
func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, loginURLWithNext(h.cfg.LoginURL, r.URL.RequestURI()), http.StatusFound)
}

func loginURLWithNext(loginURL, next string) string {
	separator := "?"
	if strings.Contains(loginURL, "?") {
		separator = "&"
	}
	return loginURL + separator + "next=" + url.QueryEscape(next)
}
