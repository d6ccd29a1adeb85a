package config

import (
	"fmt"
	"strings"
	"time"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw on top of the defaults and validates the
// result.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.TemplatesDir != nil {
		dir, err := expandHome(strings.TrimSpace(*raw.TemplatesDir))
		if err != nil {
			return nil, &ValidationError{Path: "templates_dir", Err: err}
		}
		cfg.TemplatesDir = dir
	}
	if raw.ShortcutsDir != nil {
		dir, err := expandHome(strings.TrimSpace(*raw.ShortcutsDir))
		if err != nil {
			return nil, &ValidationError{Path: "shortcuts_dir", Err: err}
		}
		cfg.ShortcutsDir = dir
	}
	if raw.DiscoveryTimeout != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*raw.DiscoveryTimeout))
		if err != nil {
			return nil, &ValidationError{Path: "discovery_timeout", Err: err}
		}
		cfg.DiscoveryTimeout = d
	}
	if raw.PollInterval != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*raw.PollInterval))
		if err != nil {
			return nil, &ValidationError{Path: "poll_interval", Err: err}
		}
		cfg.PollInterval = d
	}
	if raw.KittyCommand != nil {
		cfg.KittyCommand = strings.TrimSpace(*raw.KittyCommand)
	}
	if raw.Shell != nil {
		cfg.Shell = strings.TrimSpace(*raw.Shell)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.Notifications != nil {
		cfg.Notifications = *raw.Notifications
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
