package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

// source identifies a configuration layer. Layers are merged in ascending
// order, so a higher source overrides non-zero fields of a lower one.
type source int

const (
	sourceDefaults source = iota
	sourceFile
	sourceEnv
	sourceFlags
)

var mergeOrder = []source{sourceDefaults, sourceFile, sourceEnv, sourceFlags}

type configBuilder struct {
	configs map[source]*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make(map[source]*StructuredConfig, len(mergeOrder)),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, src := range mergeOrder {
		cfg, ok := b.configs[src]
		if !ok {
			continue
		}
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs[sourceDefaults] = defaultConfig()
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs[sourceFlags] = flagsCfg
	return b
}

// withDotEnv loads a dotenv file into the process environment. The path is
// taken from the -env-file flag, then ENV_FILE; a missing default ".env" is
// not an error, a missing explicitly named file is.
func (b *configBuilder) withDotEnv() *configBuilder {
	path := os.Getenv("ENV_FILE")
	if flagsCfg, ok := b.configs[sourceFlags]; ok && flagsCfg.EnvFilePath != "" {
		path = flagsCfg.EnvFilePath
	}

	if err := loadDotEnv(path); err != nil {
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs[sourceEnv] = envCfg
	return b
}

// withFile loads the JSON or YAML config file named by the highest-priority
// layer that sets ConfigFilePath.
func (b *configBuilder) withFile() *configBuilder {
	var path string
	for _, src := range mergeOrder {
		if cfg, ok := b.configs[src]; ok && cfg.ConfigFilePath != "" {
			path = cfg.ConfigFilePath
		}
	}

	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs[sourceFile] = fileCfg
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "info",
		},
		Auth: Auth{
			SessionTTL:        14 * 24 * time.Hour,
			SessionCookieName: "sessionid",
			CSRFCookieName:    "csrftoken",
			CookieSameSite:    "lax",
			LoginURL:          "/login",
			LoginRedirectURL:  "/dashboard",
			LogoutRedirectURL: "/login",
			SignupRedirectURL: "/dashboard",
			PasswordHasher:    "argon2id",
			Argon2: Argon2{
				Time:      1,
				MemoryKiB: 64 * 1024,
				Threads:   4,
			},
			BcryptCost: 12,
			PasswordPolicy: PasswordPolicy{
				MinLength: 8,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN:          "auth.db",
				MaxOpenConns: 10,
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Workers: Workers{
			SessionCleanupInterval: time.Hour,
		},
	}
}
