package appconf

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) at configPath, or $DASH_CONFIG if configPath is empty
//  3. env (prefix DASH_)
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	k := koanf.New(".")

	if configPath == "" {
		configPath = os.Getenv("DASH_CONFIG")
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: DASH_PORT, DASH_SHEETS_TOKEN, ...
	// Underscores are preserved so keys match the koanf tags on the struct.
	envProvider := env.Provider("DASH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "dash_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns a Config populated with development defaults.
func Defaults() *Config {
	return &Config{
		Port:          4000,
		EnvName:       "development",
		Env:           Development,
		RateLimit:     100,
		SheetsBaseURL: "https://api.airtable.com/v0",
		MirrorDBPath:  "dashboard.db",
		SyncInterval:  "5m",
	}
}

// Validate checks that required settings are present and well formed.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.SheetsBaseURL == "" {
		return errors.New("sheets_base_url must not be empty")
	}
	if _, err := time.ParseDuration(c.SyncInterval); err != nil {
		return errors.New("sync_interval must be a valid duration (e.g. 5m)")
	}
	if c.Env == Production {
		if c.SheetsToken == "" {
			return errors.New("sheets_token is required in production")
		}
		if c.IdentityDomain == "" {
			return errors.New("identity_domain is required in production")
		}
	}
	return nil
}

// SyncIntervalDuration returns the parsed sync interval. Validate must have
// succeeded first.
func (c *Config) SyncIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.SyncInterval)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}
