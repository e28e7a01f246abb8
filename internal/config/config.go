// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

// Package config loads StaffPass configuration from defaults, an optional
// YAML file, STAFFPASS_-prefixed environment variables, and command-line
// flags, in that order of precedence (later wins).
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/staffpass/staffpass/internal/auth"
)

// Config holds the full service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
	SMTP     SMTPConfig     `koanf:"smtp"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr        string `koanf:"addr"`
	MetricsAddr string `koanf:"metrics_addr"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// AuthConfig holds credential-hashing settings.
type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `koanf:"format"`
}

// SMTPConfig holds optional email delivery settings. When Host is empty the
// service falls back to log-based token delivery.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	Domain   string `koanf:"domain"`
}

// defaults applied before any other source.
var defaults = map[string]any{
	"server.addr":         ":8080",
	"server.metrics_addr": "127.0.0.1:9100",
	"auth.bcrypt_cost":    auth.DefaultBcryptCost,
	"log.format":          "json",
	"smtp.port":           587,
}

// Load reads configuration. path may be empty (no file); flags may be nil.
// DATABASE_URL is honored as a conventional fallback for database.url.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, oops.Code("CONFIG_DEFAULTS_FAILED").With("key", key).Wrap(err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	// STAFFPASS_SERVER_ADDR -> server.addr. Single-word sections only, so a
	// plain prefix-strip plus underscore-to-dot mapping is enough; keys with
	// compound leaf names (metrics_addr, bcrypt_cost) split on the first
	// separator below.
	err := k.Load(env.Provider("STAFFPASS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "STAFFPASS_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" && !k.Exists("database.url") {
		if err := k.Set("database.url", dbURL); err != nil {
			return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is complete enough to serve.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("server.addr is required")
	}
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required (or set DATABASE_URL)")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

// SMTPEnabled reports whether SMTP delivery is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != ""
}
