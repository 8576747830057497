// Package config loads memedir settings from YAML, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/memedir/pkg/adapters/rest"
)

// Environment variables that override file settings.
const (
	EnvEndpoint = "MEMEDIR_ENDPOINT"
	EnvAdapter  = "MEMEDIR_ADAPTER"
	EnvAddr     = "MEMEDIR_ADDR"
	EnvLogLevel = "MEMEDIR_LOG_LEVEL"
)

// Config is the on-disk configuration (memedir.yaml).
type Config struct {
	File string `yaml:"-"`

	Gateway struct {
		Adapter   string        `yaml:"adapter"`
		Endpoint  string        `yaml:"endpoint"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit float64       `yaml:"rate_limit"`
		ReadOnly  bool          `yaml:"read_only"`
		Fixture   string        `yaml:"fixture"`
	} `yaml:"gateway"`

	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text | json
	} `yaml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.Gateway.Adapter = "rest"
	c.Gateway.Endpoint = rest.DefaultEndpoint
	c.Gateway.Timeout = rest.DefaultTimeout
	c.Server.Address = "127.0.0.1:8080"
	c.Log.Level = "info"
	c.Log.Format = "text"
	return c
}

// Load reads path (if non-empty and present), then .env, then environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	c.File = path

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Start from defaults
		case err != nil:
			return c, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return c, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("failed to load .env: %w", err)
	}

	c.applyEnv()
	return c, c.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Gateway.Endpoint = v
	}
	if v := os.Getenv(EnvAdapter); v != "" {
		c.Gateway.Adapter = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	switch c.Gateway.Adapter {
	case "rest", "memory":
	default:
		return fmt.Errorf("gateway.adapter: unknown adapter %q", c.Gateway.Adapter)
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway.timeout: must be >= 0")
	}
	if c.Gateway.RateLimit < 0 {
		return fmt.Errorf("gateway.rate_limit: must be >= 0")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: must be text or json")
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
