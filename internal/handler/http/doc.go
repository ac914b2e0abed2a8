// Package http implements the HTTP transport layer of the auth portal.
//
// It exposes route wiring, the server-rendered signup, login, logout and
// dashboard pages, and the middleware in front of them. Request tracing,
// access logging, CSRF protection and the login gate are handled in this
// package before requests reach the service layer.
package http
