// Package config resolves recipebox settings from .env files, the
// environment and the global config file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by Load.
const (
	EnvDatabaseURI = "RECIPES_DB_URI"
	EnvLogLevel    = "RECIPES_LOG_LEVEL"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// Config is the resolved runtime configuration.
type Config struct {
	DatabaseURI string // Empty when nothing is configured; surfaces later as a connection failure
	LogLevel    string
}

// Load resolves configuration. Variables from dotenvFiles (default ".env")
// are loaded first without overriding the process environment, then the
// environment takes priority over the global config file.
//
// Load always returns a usable Config. When the global config file cannot
// be read it is skipped, the environment alone is used, and the error is
// returned alongside for the caller to report.
func Load(dotenvFiles ...string) (*Config, error) {
	// A missing .env file is normal
	_ = godotenv.Load(dotenvFiles...)

	global, err := LoadGlobalConfig()
	if err != nil {
		global = &GlobalConfig{}
	}

	cfg := &Config{
		DatabaseURI: strings.TrimSpace(GetConfigValue(EnvDatabaseURI, global.DatabaseURI)),
		LogLevel:    GetConfigValue(EnvLogLevel, global.LogLevel),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg, err
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
