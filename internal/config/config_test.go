// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffpass/staffpass/internal/auth"
	"github.com/staffpass/staffpass/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "127.0.0.1:9100", cfg.Server.MetricsAddr)
	assert.Equal(t, auth.DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffpass.yaml")
	content := `
server:
  addr: ":9090"
database:
  url: "postgres://localhost/staffpass"
log:
  format: "text"
smtp:
  host: "smtp.example.com"
  from: "noreply@example.com"
  domain: "example.com"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres://localhost/staffpass", cfg.Database.URL)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, "noreply@example.com", cfg.SMTP.From)
	// Untouched keys keep their defaults.
	assert.Equal(t, "127.0.0.1:9100", cfg.Server.MetricsAddr)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STAFFPASS_SERVER_ADDR", ":7070")
	t.Setenv("STAFFPASS_DATABASE_URL", "postgres://env/staffpass")
	t.Setenv("STAFFPASS_LOG_FORMAT", "text")

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "postgres://env/staffpass", cfg.Database.URL)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_DatabaseURLFallback(t *testing.T) {
	t.Run("used when database.url is unset", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://fallback/staffpass")

		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://fallback/staffpass", cfg.Database.URL)
	})

	t.Run("prefixed variable wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://fallback/staffpass")
		t.Setenv("STAFFPASS_DATABASE_URL", "postgres://explicit/staffpass")

		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://explicit/staffpass", cfg.Database.URL)
	})
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("STAFFPASS_SERVER_ADDR", ":7070")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server.addr", "", "listen address")
	require.NoError(t, flags.Parse([]string{"--server.addr", ":6060"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Server.Addr)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Server:   config.ServerConfig{Addr: ":8080"},
			Database: config.DatabaseConfig{URL: "postgres://localhost/staffpass"},
			Log:      config.LogConfig{Format: "json"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing server addr", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Addr = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.addr")
	})

	t.Run("missing database URL", func(t *testing.T) {
		cfg := valid()
		cfg.Database.URL = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.url")
	})

	t.Run("bad log format", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Format = "xml"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})
}

func TestConfig_SMTPEnabled(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.SMTPEnabled())

	cfg.SMTP.Host = "smtp.example.com"
	assert.True(t, cfg.SMTPEnabled())
}
