// Package config manages configuration for the actifly beta API backend and CLI.
// It uses Viper for unified configuration management from files and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/actifly/api/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the unified configuration structure for both the backend
// services and the admin CLI. Backend values come from the hosting environment;
// CLI values come from ~/.actifly/config.yaml.
type Config struct {
	// CLI configuration
	APIEndpoint string `mapstructure:"api_endpoint" yaml:"api_endpoint" validate:"omitempty,url"`

	// Backend service configuration
	AdminToken      string        `mapstructure:"beta_admin_token" yaml:"beta_admin_token"`
	InitTimeout     time.Duration `mapstructure:"init_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	MailAPIKey      string        `mapstructure:"zoho_api_key"`
	MailEndpoint    string        `mapstructure:"mail_endpoint" validate:"omitempty,url"`
	MailFromAddress string        `mapstructure:"mail_from_address" validate:"omitempty,email"`
	MailFromName    string        `mapstructure:"mail_from_name"`
	MailToAddress   string        `mapstructure:"mail_to_address" validate:"omitempty,email"`
	MaxCapacity     int           `mapstructure:"beta_max" validate:"gt=0"`
	Port            int           `mapstructure:"port" validate:"omitempty"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	SignupsTable    string        `mapstructure:"signups_table"`
}

var validate = validator.New()

// Load loads the backend configuration from environment variables.
// The variable names match the hosting platform surface (BETA_MAX,
// BETA_ADMIN_TOKEN, ZOHO_API_KEY, SIGNUPS_TABLE, ...).
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadBackend loads and validates configuration for the HTTP backend.
// The signup store table is required; the admin token and mail API key are
// checked per-request so that only the endpoints needing them fail.
func LoadBackend() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cfg.SignupsTable == "" {
		return nil, fmt.Errorf("SIGNUPS_TABLE cannot be empty")
	}

	return cfg, nil
}

// MustLoadBackend loads backend configuration and exits on error.
// Suitable for application startup where configuration errors should be fatal.
func MustLoadBackend() *Config {
	cfg, err := LoadBackend()
	if err != nil {
		slog.Error("failed to load backend configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// LoadCLI loads configuration specifically for CLI usage from
// ~/.actifly/config.yaml. Returns an error if the config file doesn't exist.
func LoadCLI() (*Config, error) {
	v := viper.New()

	if err := loadConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Save saves the CLI configuration to the user's home directory.
// Overwrites the existing config file if it exists.
func Save(cfg *Config) error {
	currentUser, err := user.Current()
	if err != nil {
		return fmt.Errorf("error getting current user: %w", err)
	}

	configDir := configDirPath(currentUser.HomeDir)

	if err = os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	configFilePath := filepath.Join(configDir, configFileName)

	v := viper.New()
	v.Set("api_endpoint", cfg.APIEndpoint)
	v.Set("beta_admin_token", cfg.AdminToken)

	if err = v.WriteConfigAs(configFilePath); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	// The file holds the admin secret
	if err = os.Chmod(configFilePath, 0o600); err != nil {
		return fmt.Errorf("error setting config file permissions: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the CLI config file.
func GetConfigPath() (string, error) {
	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("error getting current user: %w", err)
	}

	return filepath.Join(configDirPath(currentUser.HomeDir), configFileName), nil
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Helper functions

const (
	configDirName  = ".actifly"
	configFileName = "config.yaml"
)

func configDirPath(homeDir string) string {
	return filepath.Join(homeDir, configDirName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("beta_max", constants.DefaultMaxCapacity)
	v.SetDefault("init_timeout", "10s")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("mail_endpoint", "https://api.zeptomail.eu")
	v.SetDefault("mail_from_address", "support@actifly.app")
	v.SetDefault("mail_from_name", "ActiFly Support")
	v.SetDefault("mail_to_address", "support@actifly.app")
	v.SetDefault("port", 8080)
	v.SetDefault("request_timeout", "15s")
}

func bindEnvVars(v *viper.Viper) {
	// Bind the platform-supplied environment variables explicitly
	envVars := []string{
		"BETA_ADMIN_TOKEN",
		"BETA_MAX",
		"INIT_TIMEOUT",
		"LOG_LEVEL",
		"MAIL_ENDPOINT",
		"MAIL_FROM_ADDRESS",
		"MAIL_FROM_NAME",
		"MAIL_TO_ADDRESS",
		"PORT",
		"REQUEST_TIMEOUT",
		"SIGNUPS_TABLE",
		"ZOHO_API_KEY",
	}

	for _, envVar := range envVars {
		_ = v.BindEnv(strings.ToLower(envVar), envVar)
	}
}

func loadConfigFile(v *viper.Viper) error {
	currentUser, err := user.Current()
	if err != nil {
		return fmt.Errorf("error getting current user: %w", err)
	}

	configFile := filepath.Join(configDirPath(currentUser.HomeDir), configFileName)

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	if readErr := v.ReadInConfig(); readErr != nil {
		return readErr
	}

	return nil
}
