package http

import "errors"

var (
	errUnknownPage = errors.New("unknown page")

	ErrCSRFCookieMissing = errors.New("CSRF cookie not set")
	ErrCSRFTokenMismatch = errors.New("CSRF token missing or incorrect")
)
