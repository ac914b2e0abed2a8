package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args. Unset flags leave the
// corresponding fields zero so lower-priority sources keep their values.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-redis-url redis URL for the session store
//	-c/-config JSON or YAML config file path
//	-env-file dotenv file path
//	-log-level log level (debug, info, warn, error)
//	-session-ttl session lifetime (e.g., "336h")
//	-csrf-key CSRF token key
//	-cookie-secure set the Secure attribute on cookies
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cleanup-interval expired session purge interval (e.g., "1h")
//	-skip-migrations do not apply database migrations at startup
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress   NetAddress
		databaseDSN     string
		redisURL        string
		configPath      string
		envFilePath     string
		logLevel        string
		sessionTTL      time.Duration
		csrfKey         string
		cookieSecure    bool
		requestTimeout  time.Duration
		cleanupInterval time.Duration
		skipMigrations  bool
	)

	fs := flag.NewFlagSet("auth-portal", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisURL, "redis-url", "", "Redis URL for the session store")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&envFilePath, "env-file", "", "Dotenv file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 336h)")
	fs.StringVar(&csrfKey, "csrf-key", "", "CSRF token key")
	fs.BoolVar(&cookieSecure, "cookie-secure", false, "Set the Secure attribute on cookies")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Expired session purge interval (e.g., 1h)")
	fs.BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply database migrations")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Auth: Auth{
			SessionTTL:   sessionTTL,
			CSRFKey:      csrfKey,
			CookieSecure: cookieSecure,
		},
		Storage: Storage{
			DB: DB{
				DSN:            databaseDSN,
				SkipMigrations: skipMigrations,
			},
			Redis: Redis{
				URL: redisURL,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SessionCleanupInterval: cleanupInterval,
		},
		ConfigFilePath: configPath,
		EnvFilePath:    envFilePath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. An empty host means all interfaces. It validates the port
// range, checks IP correctness unless host is "localhost", and returns an
// error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
