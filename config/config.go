// Package config resolves hexforge's runtime settings.
//
// Settings come from three layers: built-in defaults, HEXFORGE_*
// environment variables, and command-line flags. A .env file in the
// working directory is folded into the environment before resolution, and
// real environment variables win over .env entries. Flag handling lives
// with the CLI; this package covers the first two layers.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/hexforge/hexforge/blueprint"
)

// Environment variable names recognized by hexforge.
const (
	EnvBlueprint = "HEXFORGE_BLUEPRINT"
	EnvOutputDir = "HEXFORGE_OUTPUT_DIR"
	EnvLogLevel  = "HEXFORGE_LOG_LEVEL"
	EnvGitName   = "HEXFORGE_GIT_NAME"
	EnvGitEmail  = "HEXFORGE_GIT_EMAIL"
)

// Config carries the resolved settings for one invocation.
type Config struct {
	// Blueprint is the path of the blueprint document.
	Blueprint string
	// OutputDir is the directory generated projects are written into.
	OutputDir string
	// LogLevel is the slog level name: debug, info, warn or error.
	LogLevel string
	// GitName and GitEmail override the scaffold commit signature.
	GitName  string
	GitEmail string
	// TemplateDir is the XDG data directory reserved for template
	// overrides.
	TemplateDir string
	// StateDir is the XDG state directory for run records.
	StateDir string
}

// Load resolves the configuration from defaults and the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Blueprint:   blueprint.DefaultFilename,
		OutputDir:   ".",
		LogLevel:    "info",
		TemplateDir: filepath.Join(xdg.DataHome, "hexforge", "templates"),
		StateDir:    filepath.Join(xdg.StateHome, "hexforge"),
	}

	if v := strings.TrimSpace(os.Getenv(EnvBlueprint)); v != "" {
		cfg.Blueprint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGitName)); v != "" {
		cfg.GitName = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGitEmail)); v != "" {
		cfg.GitEmail = v
	}

	return cfg
}

// Logger builds the process logger at the configured level. Unknown level
// names fall back to info.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
