// Package config reads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultMaxPerDay = 3
	defaultOwner     = "me"
)

// Config holds the settings shared by the CLI and the services.
type Config struct {
	// Home is the data directory holding the database and logs.
	Home string
	// DBPath is the SQLite file.
	DBPath string
	// TemplatesDir holds user template files (*.json); may not exist.
	TemplatesDir string
	Debug        bool
	// LogUseCases mirrors service telemetry to stderr.
	LogUseCases bool
	// Owner is whose weeks commands act on when --owner is not given.
	Owner string
	// MaxPerDay caps entries per day for templates that do not set their own cap.
	MaxPerDay int
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	home := defaultHome()
	return Config{
		Home:         home,
		DBPath:       filepath.Join(home, "temis.db"),
		TemplatesDir: filepath.Join(home, "templates"),
		Owner:        defaultOwner,
		MaxPerDay:    defaultMaxPerDay,
	}
}

// LoadConfig reads TEMIS_* variables, falling back to defaults for any unset
// or malformed values. TEMIS_HOME moves the default DB and template paths.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMIS_HOME"); v != "" {
		cfg.Home = v
		cfg.DBPath = filepath.Join(v, "temis.db")
		cfg.TemplatesDir = filepath.Join(v, "templates")
	}
	if v := os.Getenv("TEMIS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TEMIS_TEMPLATES"); v != "" {
		cfg.TemplatesDir = v
	}
	if v := os.Getenv("TEMIS_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("TEMIS_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TEMIS_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TEMIS_MAX_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxPerDay = n
		}
	}
	return cfg
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".temis"
	}
	return filepath.Join(home, ".temis")
}
