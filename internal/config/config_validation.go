// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// sentinel errors from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
			return fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
		}
	}

	if err := cfg.Auth.validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SessionCleanupInterval < 0 {
		return fmt.Errorf("%w: negative session cleanup interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (a Auth) validate() error {
	switch {
	case a.CSRFKey == "":
		return fmt.Errorf("%w: CSRF key is required", ErrInvalidAuthConfigs)
	case a.SessionTTL <= 0:
		return fmt.Errorf("%w: session TTL must be positive", ErrInvalidAuthConfigs)
	case a.SessionCookieName == "" || a.CSRFCookieName == "":
		return fmt.Errorf("%w: cookie names must not be empty", ErrInvalidAuthConfigs)
	case a.SessionCookieName == a.CSRFCookieName:
		return fmt.Errorf("%w: session and CSRF cookies must differ", ErrInvalidAuthConfigs)
	}

	switch strings.ToLower(a.CookieSameSite) {
	case "lax", "strict":
	default:
		return fmt.Errorf("%w: unsupported SameSite mode %q", ErrInvalidAuthConfigs, a.CookieSameSite)
	}

	switch a.PasswordHasher {
	case "argon2id", "bcrypt":
	default:
		return fmt.Errorf("%w: unsupported password hasher %q", ErrInvalidAuthConfigs, a.PasswordHasher)
	}

	if a.PasswordPolicy.MinLength < 1 {
		return fmt.Errorf("%w: password minimum length must be positive", ErrInvalidAuthConfigs)
	}

	for _, u := range []string{a.LoginURL, a.LoginRedirectURL, a.LogoutRedirectURL, a.SignupRedirectURL} {
		if !strings.HasPrefix(u, "/") {
			return fmt.Errorf("%w: redirect target %q must be a local path", ErrInvalidAuthConfigs, u)
		}
	}

	return nil
}
