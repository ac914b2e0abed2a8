package utils

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// NewTraceID returns a time-ordered UUIDv7, or a random UUIDv4 if the clock
// source fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// SetNoStore marks a response as private and never cacheable. Pages showing
// account data must not be served from a shared or back-button cache after
// logout.
func SetNoStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// IsSafeRedirect reports whether target is a local path that can be
// redirected to without sending the user to another site. Absolute URLs,
// scheme-relative URLs ("//evil.com"), backslash tricks and control
// characters are rejected.
func IsSafeRedirect(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") || strings.ContainsRune(target, '\\') {
		return false
	}
	for _, r := range target {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}

	return u.Scheme == "" && u.Host == "" && u.User == nil
}
