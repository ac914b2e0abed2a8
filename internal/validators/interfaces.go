// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - PasswordRule: one pluggable password strength rule. A PasswordValidator
//     runs a configured list of rules and reports every failure.
//
// Validation failures are reported as *FieldsError, which carries messages
// per form field so transport layers can render them inline.
package validators

import (
	"context"

	"github.com/MKhiriev/go-auth-portal/models"
)

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// PasswordRule is a single password strength check. Check returns a
// user-facing message when password violates the rule and "" otherwise.
// user carries the attributes known at check time (username, email, names).
type PasswordRule interface {
	Check(password string, user models.User) string
}
