package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the effective launcher configuration.
type Config struct {
	// TemplatesDir holds the *.yml / *.yaml workspace templates.
	TemplatesDir string
	// DiscoveryTimeout bounds how long a launched window is waited for.
	DiscoveryTimeout time.Duration
	// PollInterval is the window list polling period during discovery.
	PollInterval time.Duration
	KittyCommand     string
	Shell            string
	LogLevel         string
	Notifications    bool
	// ShortcutsDir receives the generated .desktop files.
	ShortcutsDir string
}

const (
	defaultDiscoveryTimeout = 10 * time.Second
	defaultPollInterval     = 100 * time.Millisecond
)

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		TemplatesDir:     filepath.Join(home, ".config", "workspace-launcher", "templates"),
		DiscoveryTimeout: defaultDiscoveryTimeout,
		PollInterval:     defaultPollInterval,
		KittyCommand:     "kitty",
		Shell:            "bash",
		LogLevel:         "warning",
		Notifications:    true,
		ShortcutsDir:     filepath.Join(home, ".local", "share", "applications"),
	}
}

// Validate checks the effective config.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TemplatesDir) == "" {
		return &ValidationError{Path: "templates_dir", Err: fmt.Errorf("templates_dir must not be empty")}
	}
	if c.DiscoveryTimeout <= 0 {
		return &ValidationError{Path: "discovery_timeout", Err: fmt.Errorf("discovery_timeout must be > 0")}
	}
	if c.PollInterval <= 0 {
		return &ValidationError{Path: "poll_interval", Err: fmt.Errorf("poll_interval must be > 0")}
	}
	if c.PollInterval > c.DiscoveryTimeout {
		return &ValidationError{Path: "poll_interval", Err: fmt.Errorf("poll_interval must not exceed discovery_timeout")}
	}
	if strings.TrimSpace(c.KittyCommand) == "" {
		return &ValidationError{Path: "kitty_command", Err: fmt.Errorf("kitty_command must not be empty")}
	}
	if strings.TrimSpace(c.Shell) == "" {
		return &ValidationError{Path: "shell", Err: fmt.Errorf("shell must not be empty")}
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
