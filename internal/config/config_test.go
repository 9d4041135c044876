package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.MaxCapacity)
	assert.Equal(t, "https://api.zeptomail.eu", cfg.MailEndpoint)
	assert.Equal(t, "support@actifly.app", cfg.MailFromAddress)
	assert.Equal(t, "ActiFly Support", cfg.MailFromName)
	assert.Equal(t, "support@actifly.app", cfg.MailToAddress)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.InitTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BETA_MAX", "250")
	t.Setenv("BETA_ADMIN_TOKEN", "s3cret")
	t.Setenv("SIGNUPS_TABLE", "actifly-signups")
	t.Setenv("ZOHO_API_KEY", "zepto-key")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.MaxCapacity)
	assert.Equal(t, "s3cret", cfg.AdminToken)
	assert.Equal(t, "actifly-signups", cfg.SignupsTable)
	assert.Equal(t, "zepto-key", cfg.MailAPIKey)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("non-positive capacity", func(t *testing.T) {
		t.Setenv("BETA_MAX", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad mail endpoint", func(t *testing.T) {
		t.Setenv("MAIL_ENDPOINT", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad from address", func(t *testing.T) {
		t.Setenv("MAIL_FROM_ADDRESS", "not-an-email")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadBackend_RequiresSignupsTable(t *testing.T) {
	t.Setenv("SIGNUPS_TABLE", "")
	_, err := LoadBackend()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIGNUPS_TABLE")

	t.Setenv("SIGNUPS_TABLE", "actifly-signups")
	cfg, err := LoadBackend()
	require.NoError(t, err)
	assert.Equal(t, "actifly-signups", cfg.SignupsTable)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"debug", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.GetLogLevel(), "level %q", tt.level)
	}
}
