package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. The same tags serve
// both JSON and YAML; durations are written as strings like "1h" or "30s".
type fileConfig struct {
	App struct {
		Version  string `json:"version" yaml:"version"`
		LogLevel string `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Auth struct {
		SessionTTL        Duration `json:"session_ttl" yaml:"session_ttl"`
		SessionCookieName string   `json:"session_cookie_name" yaml:"session_cookie_name"`
		CSRFCookieName    string   `json:"csrf_cookie_name" yaml:"csrf_cookie_name"`
		CSRFKey           string   `json:"csrf_key" yaml:"csrf_key"`
		CookieSecure      bool     `json:"cookie_secure" yaml:"cookie_secure"`
		CookieSameSite    string   `json:"cookie_same_site" yaml:"cookie_same_site"`
		LoginURL          string   `json:"login_url" yaml:"login_url"`
		LoginRedirectURL  string   `json:"login_redirect_url" yaml:"login_redirect_url"`
		LogoutRedirectURL string   `json:"logout_redirect_url" yaml:"logout_redirect_url"`
		SignupRedirectURL string   `json:"signup_redirect_url" yaml:"signup_redirect_url"`
		PasswordHasher    string   `json:"password_hasher" yaml:"password_hasher"`
		Argon2            struct {
			Time      uint32 `json:"time" yaml:"time"`
			MemoryKiB uint32 `json:"memory_kib" yaml:"memory_kib"`
			Threads   uint8  `json:"threads" yaml:"threads"`
		} `json:"argon2" yaml:"argon2"`
		BcryptCost     int `json:"bcrypt_cost" yaml:"bcrypt_cost"`
		PasswordPolicy struct {
			MinLength      int    `json:"min_length" yaml:"min_length"`
			CommonListPath string `json:"common_list_path" yaml:"common_list_path"`
			AllowNumeric   bool   `json:"allow_numeric" yaml:"allow_numeric"`
			AllowSimilar   bool   `json:"allow_similar" yaml:"allow_similar"`
		} `json:"password_policy" yaml:"password_policy"`
	} `json:"auth" yaml:"auth"`

	Storage struct {
		DB struct {
			DSN            string `json:"dsn" yaml:"dsn"`
			SkipMigrations bool   `json:"skip_migrations" yaml:"skip_migrations"`
			MaxOpenConns   int    `json:"max_open_conns" yaml:"max_open_conns"`
		} `json:"db" yaml:"db"`
		Redis struct {
			URL string `json:"url" yaml:"url"`
		} `json:"redis" yaml:"redis"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Workers struct {
		SessionCleanupInterval Duration `json:"session_cleanup_interval" yaml:"session_cleanup_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a config file and decodes it as YAML when the extension
// is .yaml or .yml and as JSON otherwise.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:  fc.App.Version,
			LogLevel: fc.App.LogLevel,
		},
		Auth: Auth{
			SessionTTL:        time.Duration(fc.Auth.SessionTTL),
			SessionCookieName: fc.Auth.SessionCookieName,
			CSRFCookieName:    fc.Auth.CSRFCookieName,
			CSRFKey:           fc.Auth.CSRFKey,
			CookieSecure:      fc.Auth.CookieSecure,
			CookieSameSite:    fc.Auth.CookieSameSite,
			LoginURL:          fc.Auth.LoginURL,
			LoginRedirectURL:  fc.Auth.LoginRedirectURL,
			LogoutRedirectURL: fc.Auth.LogoutRedirectURL,
			SignupRedirectURL: fc.Auth.SignupRedirectURL,
			PasswordHasher:    fc.Auth.PasswordHasher,
			Argon2: Argon2{
				Time:      fc.Auth.Argon2.Time,
				MemoryKiB: fc.Auth.Argon2.MemoryKiB,
				Threads:   fc.Auth.Argon2.Threads,
			},
			BcryptCost: fc.Auth.BcryptCost,
			PasswordPolicy: PasswordPolicy{
				MinLength:      fc.Auth.PasswordPolicy.MinLength,
				CommonListPath: fc.Auth.PasswordPolicy.CommonListPath,
				AllowNumeric:   fc.Auth.PasswordPolicy.AllowNumeric,
				AllowSimilar:   fc.Auth.PasswordPolicy.AllowSimilar,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN:            fc.Storage.DB.DSN,
				SkipMigrations: fc.Storage.DB.SkipMigrations,
				MaxOpenConns:   fc.Storage.DB.MaxOpenConns,
			},
			Redis: Redis{
				URL: fc.Storage.Redis.URL,
			},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Workers: Workers{
			SessionCleanupInterval: time.Duration(fc.Workers.SessionCleanupInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as raw nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	tmp, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
