// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// StructuredConfig is the top-level configuration container for the
// auth portal. It aggregates all sub-configurations and is populated by
// merging defaults, an optional config file, environment variables
// (optionally seeded from a .env file) and command-line flags.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string and
	// the log level.
	App App `envPrefix:"APP_"`

	// Auth holds everything the authentication workflow needs: session
	// lifetime, cookie attributes, redirect targets, the CSRF key and the
	// password hashing and policy settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the relational database and the
	// optional Redis session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. Populated via the CONFIG environment variable or the -c / -config
	// flag.
	ConfigFilePath string `env:"CONFIG"`

	// EnvFilePath is the optional path to a dotenv file loaded into the
	// process environment before environment variables are parsed.
	// Env: ENV_FILE
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds application-level configuration values.
type App struct {
	// Version overrides the build version reported by GET /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth groups the settings of the session-based authentication workflow.
type Auth struct {
	// SessionTTL is how long a session stays valid after login.
	// Env: AUTH_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// SessionCookieName is the name of the cookie carrying the session token.
	// Env: AUTH_SESSION_COOKIE_NAME
	SessionCookieName string `env:"SESSION_COOKIE_NAME"`

	// CSRFCookieName is the name of the cookie carrying the CSRF secret.
	// Env: AUTH_CSRF_COOKIE_NAME
	CSRFCookieName string `env:"CSRF_COOKIE_NAME"`

	// CSRFKey is the HMAC key deriving form tokens from CSRF secrets.
	// Must be kept confidential.
	// Env: AUTH_CSRF_KEY
	CSRFKey string `env:"CSRF_KEY"`

	// CookieSecure sets the Secure attribute on every issued cookie.
	// Should be true in production.
	// Env: AUTH_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// CookieSameSite is "lax" or "strict".
	// Env: AUTH_COOKIE_SAME_SITE
	CookieSameSite string `env:"COOKIE_SAME_SITE"`

	// LoginURL is where the access-control gate sends anonymous requests.
	// Env: AUTH_LOGIN_URL
	LoginURL string `env:"LOGIN_URL"`

	// LoginRedirectURL is the landing page after login when no safe "next"
	// value was supplied.
	// Env: AUTH_LOGIN_REDIRECT_URL
	LoginRedirectURL string `env:"LOGIN_REDIRECT_URL"`

	// LogoutRedirectURL is the landing page after logout.
	// Env: AUTH_LOGOUT_REDIRECT_URL
	LogoutRedirectURL string `env:"LOGOUT_REDIRECT_URL"`

	// SignupRedirectURL is the landing page after a successful signup.
	// Env: AUTH_SIGNUP_REDIRECT_URL
	SignupRedirectURL string `env:"SIGNUP_REDIRECT_URL"`

	// PasswordHasher selects the algorithm for new hashes: "argon2id" or
	// "bcrypt". Both are always accepted for verification.
	// Env: AUTH_PASSWORD_HASHER
	PasswordHasher string `env:"PASSWORD_HASHER"`

	// Argon2 holds Argon2id cost parameters.
	Argon2 Argon2 `envPrefix:"ARGON2_"`

	// BcryptCost is the bcrypt work factor.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// PasswordPolicy configures the password strength rules.
	PasswordPolicy PasswordPolicy `envPrefix:"PASSWORD_"`
}

// Argon2 holds Argon2id cost parameters.
type Argon2 struct {
	// Env: AUTH_ARGON2_TIME
	Time uint32 `env:"TIME"`
	// Env: AUTH_ARGON2_MEMORY_KIB
	MemoryKiB uint32 `env:"MEMORY_KIB"`
	// Env: AUTH_ARGON2_THREADS
	Threads uint8 `env:"THREADS"`
}

// PasswordPolicy configures the pluggable password strength rules.
type PasswordPolicy struct {
	// MinLength is the minimum password length in characters.
	// Env: AUTH_PASSWORD_MIN_LENGTH
	MinLength int `env:"MIN_LENGTH"`

	// CommonListPath optionally replaces the embedded common-password list
	// with a newline-separated file.
	// Env: AUTH_PASSWORD_COMMON_LIST_PATH
	CommonListPath string `env:"COMMON_LIST_PATH"`

	// AllowNumeric disables the all-digits rule.
	// Env: AUTH_PASSWORD_ALLOW_NUMERIC
	AllowNumeric bool `env:"ALLOW_NUMERIC"`

	// AllowSimilar disables the similarity-to-user-attributes rule.
	// Env: AUTH_PASSWORD_ALLOW_SIMILAR
	AllowSimilar bool `env:"ALLOW_SIMILAR"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis optionally moves sessions out of the relational database.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is either a PostgreSQL URL ("postgres://...") or an SQLite file
	// path / URI ("auth.db", "file:auth.db?_foreign_keys=on").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// SkipMigrations disables applying embedded migrations at startup.
	// Env: STORAGE_DB_SKIP_MIGRATIONS
	SkipMigrations bool `env:"SKIP_MIGRATIONS"`

	// MaxOpenConns limits the connection pool size.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Redis holds settings of the optional Redis session store.
type Redis struct {
	// URL is a redis:// URL. Sessions are kept in SQL when empty.
	// Env: STORAGE_REDIS_URL
	URL string `env:"URL"`
}

// Server holds network and timeout settings for the inbound HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionCleanupInterval is how often expired sessions are purged.
	// Zero disables the worker.
	// Env: WORKERS_SESSION_CLEANUP_INTERVAL
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Config file (JSON or YAML, path resolved from env and flags)
//  3. Environment variables, seeded from an optional .env file
//  4. Command-line flags (args, usually os.Args[1:])
//
// Flags are parsed first because they may name the .env file and the config
// file; their values are still applied last.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withFlags(args).
		withDotEnv().
		withEnv().
		withFile().
		build()
}
