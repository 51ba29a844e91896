package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     BackendJSON,
			DataFile:    "/tmp/roster.json",
			SQLiteFile:  "/tmp/roster.db",
			SessionFile: "/tmp/session.json",
		},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
		Display: DisplayConfig{Color: true, DateFormat: DefaultDateFormat},
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validCfg().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := validCfg()
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.DataFile = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite backend should not need data_file: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"json without file", func(c *Config) { c.Storage.DataFile = "" }, "storage.data_file"},
		{"sqlite without file", func(c *Config) {
			c.Storage.Backend = BackendSQLite
			c.Storage.SQLiteFile = ""
		}, "storage.sqlite_file"},
		{"no session file", func(c *Config) { c.Storage.SessionFile = "" }, "storage.session_file"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty date format", func(c *Config) { c.Display.DateFormat = "" }, "display.date_format"},
		{"date format without time", func(c *Config) { c.Display.DateFormat = "2006-01-02" }, "display.date_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_LevelIsCaseInsensitive(t *testing.T) {
	cfg := validCfg()
	cfg.Logging.Level = "DEBUG"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLUBROSTER_DATA_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendJSON)
	}
	want := filepath.Join(home, ".clubroster", "roster.json")
	if cfg.Storage.DataFile != want {
		t.Errorf("data_file = %q, want %q", cfg.Storage.DataFile, want)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Display.DateFormat != DefaultDateFormat {
		t.Errorf("date_format = %q", cfg.Display.DateFormat)
	}
	if !cfg.Storage.QuarantineInvalid {
		t.Error("quarantine_invalid should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLUBROSTER_DATA_FILE", "/srv/club/roster.json")
	t.Setenv("CLUBROSTER_STORAGE_BACKEND", "sqlite")
	t.Setenv("CLUBROSTER_LOGGING_LEVEL", "debug")
	t.Setenv("CLUBROSTER_COLOR", "true")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.DataFile != "/srv/club/roster.json" {
		t.Errorf("data_file = %q", cfg.Storage.DataFile)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.Display.Color {
		t.Error("NO_COLOR must disable color")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".clubroster")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "logging:\n  format: json\ndisplay:\n  date_format: \"02/01/2006 15:04\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Display.DateFormat != "02/01/2006 15:04" {
		t.Errorf("date_format = %q", cfg.Display.DateFormat)
	}
}

func TestLoad_InvalidFileValue(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".clubroster")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  backend: mongo\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "storage.backend") {
		t.Fatalf("expected backend error, got %v", err)
	}
}
