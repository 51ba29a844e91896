package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// BackendJSON stores the roster in a single JSON document.
	BackendJSON = "json"

	// BackendSQLite stores the roster in a SQLite database.
	BackendSQLite = "sqlite"

	// DefaultDateFormat is how event times are shown and parsed.
	DefaultDateFormat = "2006-01-02 15:04"
)

// Config holds all configuration for clubroster.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Display DisplayConfig `mapstructure:"display"`
}

// StorageConfig selects where the roster and the view session are kept.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	DataFile   string `mapstructure:"data_file"`
	SQLiteFile string `mapstructure:"sqlite_file"`
	// SessionFile holds the view state between invocations.
	SessionFile string `mapstructure:"session_file"`
	// QuarantineInvalid moves a data file that fails integrity checks aside
	// before starting over with an empty roster.
	QuarantineInvalid bool `mapstructure:"quarantine_invalid"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DisplayConfig holds terminal rendering settings.
type DisplayConfig struct {
	Color      bool   `mapstructure:"color"`
	DateFormat string `mapstructure:"date_format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	dataDir := filepath.Join(homeDir(), ".clubroster")

	// Defaults
	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.data_file", filepath.Join(dataDir, "roster.json"))
	v.SetDefault("storage.sqlite_file", filepath.Join(dataDir, "roster.db"))
	v.SetDefault("storage.session_file", filepath.Join(dataDir, "session.json"))
	v.SetDefault("storage.quarantine_invalid", true)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("display.color", true)
	v.SetDefault("display.date_format", DefaultDateFormat)

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("CLUBROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("storage.data_file", "CLUBROSTER_DATA_FILE")
	_ = v.BindEnv("display.color", "CLUBROSTER_COLOR")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// NO_COLOR wins over everything else.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Display.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.DataFile == "" {
			return fmt.Errorf("storage.data_file must not be empty")
		}
	case BackendSQLite:
		if c.Storage.SQLiteFile == "" {
			return fmt.Errorf("storage.sqlite_file must not be empty")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.SessionFile == "" {
		return fmt.Errorf("storage.session_file must not be empty")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Display.DateFormat == "" {
		return fmt.Errorf("display.date_format must not be empty")
	}
	// A layout that cannot round-trip a time cannot be used to read one back.
	probe := time.Date(2024, time.March, 9, 18, 30, 0, 0, time.UTC)
	if parsed, err := time.Parse(c.Display.DateFormat, probe.Format(c.Display.DateFormat)); err != nil || !parsed.Equal(probe) {
		return fmt.Errorf("display.date_format %q must include date, hour and minute", c.Display.DateFormat)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
