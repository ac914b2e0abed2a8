package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-portal/models"
)

// csrfCookieMaxAge keeps the CSRF secret for a year; it is rotated on login
// and signup anyway.
const csrfCookieMaxAge = 365 * 24 * 60 * 60

func (h *Handler) sameSite() http.SameSite {
	if strings.EqualFold(h.cfg.CookieSameSite, "strict") {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func (h *Handler) newCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.sameSite(),
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	cookie := h.newCookie(h.cfg.SessionCookieName, session.Token, int(h.cfg.SessionTTL/time.Second))
	if !session.ExpiresAt.IsZero() {
		cookie.Expires = session.ExpiresAt.UTC()
	}
	http.SetCookie(w, cookie)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, h.newCookie(h.cfg.SessionCookieName, "", -1))
}

// sessionToken returns the session cookie value or "".
func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.cfg.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setCSRFCookie(w http.ResponseWriter, secret string) {
	http.SetCookie(w, h.newCookie(h.cfg.CSRFCookieName, secret, csrfCookieMaxAge))
}

func (h *Handler) csrfSecret(r *http.Request) string {
	cookie, err := r.Cookie(h.cfg.CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
