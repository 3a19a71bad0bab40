// Package config loads the pieshop configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Config is the pieshop application configuration. The Repository and
// Notifier fields are registry keys: they select which keyed implementation
// the handlers resolve at request time.
type Config struct {
	Listen     string    `yaml:"listen"`
	Log        LogConfig `yaml:"log"`
	Repository string    `yaml:"repository"` // memory | sqlite
	Notifier   string    `yaml:"notifier"`   // email | sms
	SQLitePath string    `yaml:"sqlite_path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:     ":8080",
		Log:        LogConfig{Level: "info", Format: "text"},
		Repository: "memory",
		Notifier:   "email",
		SQLitePath: "pieshop.db",
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown registry keys and log settings early, so a typo
// fails at startup rather than as a BindingNotFoundError mid-request.
func (c *Config) Validate() error {
	switch c.Repository {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown repository key %q (want memory or sqlite)", c.Repository)
	}
	switch c.Notifier {
	case "email", "sms":
	default:
		return fmt.Errorf("unknown notifier key %q (want email or sms)", c.Notifier)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Repository == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("sqlite repository requires sqlite_path")
	}
	return nil
}
