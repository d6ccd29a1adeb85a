package config

// RawConfig mirrors the config file. Nil fields keep their defaults.
type RawConfig struct {
	TemplatesDir     *string `yaml:"templates_dir"`
	DiscoveryTimeout *string `yaml:"discovery_timeout"`
	PollInterval     *string `yaml:"poll_interval"`
	KittyCommand     *string `yaml:"kitty_command"`
	Shell            *string `yaml:"shell"`
	LogLevel         *string `yaml:"log_level"`
	Notifications    *bool   `yaml:"notifications"`
	ShortcutsDir     *string `yaml:"shortcuts_dir"`
}
