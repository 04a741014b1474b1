package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultServerURL     = "http://localhost:8080/api"
	DefaultRetryAttempts = 3
	DefaultTimezone      = "America/Sao_Paulo"
	DevDatabaseURL       = "file:./local.db?cache=shared&mode=rwc"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	DB      DBConfig      `toml:"database"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

type ServerConfig struct {
	URL                string `toml:"url" validate:"required,url"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
	RetryAttempts      uint   `toml:"retry_attempts" validate:"min=1,max=10"`
	Timeout            string `toml:"timeout,omitempty"` // Empty means no timeout.
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string. Empty keeps the token in session.toml.
}

type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

type DisplayConfig struct {
	Timezone string `toml:"timezone"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:           DefaultServerURL,
			RetryAttempts: DefaultRetryAttempts,
		},
		Log:     LogConfig{Level: "warn"},
		Display: DisplayConfig{Timezone: DefaultTimezone},
	}
}

// Returns the directory holding every lazaro file.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "lazaro"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file at path (the default location
// when empty), then applies .env and environment overrides. A missing file is
// not an error: defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// A .env file in the working directory is optional.
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LAZARO_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("LAZARO_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Server.RetryAttempts = uint(n)
		}
	}
	if v := os.Getenv("TURSO_DATABASE_URL"); v != "" {
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv("LAZARO_DATABASE_URL"); v != "" {
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv("LAZARO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LAZARO_TIMEZONE"); v != "" {
		cfg.Display.Timezone = v
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = DevDatabaseURL
	}
}

// Validate checks field constraints and that the timeout and timezone parse.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Server.TimeoutDuration(); err != nil {
		return fmt.Errorf("invalid configuration: server.timeout: %w", err)
	}
	if cfg.Display.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Display.Timezone); err != nil {
			return fmt.Errorf("invalid configuration: display.timezone: %w", err)
		}
	}
	return nil
}

// TimeoutDuration parses the configured timeout. Zero means none.
func (s ServerConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Timeout)
}

// Location returns the display timezone, UTC when unset.
func (d DisplayConfig) Location() *time.Location {
	if d.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WriteConfig encodes cfg as TOML at path, creating the directory.
func (cfg *Config) WriteConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
