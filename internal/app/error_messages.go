// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// auth portal's HTTP handlers and middleware.
//
// All Msg* constants are human-readable messages rendered on the error and
// form pages. Keeping them in one place ensures consistent wording across
// pages.
package app

const (
	// MsgInvalidCredentials is shown for every failed login, whatever check
	// failed, so it must not mention the username.
	MsgInvalidCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."

	// MsgInvalidForm is shown when a submitted form body cannot be parsed.
	MsgInvalidForm = "The submitted form could not be read."

	// MsgCSRFFailed is shown when an unsafe request lacks a matching CSRF
	// cookie and token.
	MsgCSRFFailed = "CSRF verification failed. Request aborted."

	// MsgNotFound is shown for unknown paths.
	MsgNotFound = "The requested page was not found."
)
