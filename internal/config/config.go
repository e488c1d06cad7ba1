// Package config loads wayfinder.yaml and applies WAYFINDER_* overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/wayfinder/internal/validator"
	"github.com/aretw0/wayfinder/pkg/search"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when --config is not set.
const DefaultFile = "wayfinder.yaml"

// Config is the full runtime configuration.
type Config struct {
	// Dir holds the graph as markdown/yaml nodes. Empty means the built-in catalog.
	Dir      string `yaml:"dir"`
	LogLevel string `yaml:"log_level"`
	MaxDepth int    `yaml:"max_depth"`

	Search SearchConfig `yaml:"search"`
	Serve  ServeConfig  `yaml:"serve"`
}

// SearchConfig selects and tunes the documentation index.
// Exactly one of Remote, Index or Docs is normally set; Remote wins over
// Index which wins over Docs.
type SearchConfig struct {
	Docs    string        `yaml:"docs"`
	Index   string        `yaml:"index"`
	Remote  string        `yaml:"remote"`
	BaseURL string        `yaml:"base_url"`
	Delay   time.Duration `yaml:"delay"`
	Limit   int           `yaml:"limit"`
	Drafts  bool          `yaml:"drafts"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr       string        `yaml:"addr"`
	RedisURL   string        `yaml:"redis_url"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	LockTTL    time.Duration `yaml:"lock_ttl"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		MaxDepth: validator.DefaultMaxDepth,
		Search: SearchConfig{
			Delay: search.DefaultDelay,
			Limit: search.DefaultLimit,
		},
		Serve: ServeConfig{
			Addr:       ":8080",
			SessionTTL: 24 * time.Hour,
			LockTTL:    30 * time.Second,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from WAYFINDER_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("WAYFINDER_DIR", &c.Dir)
	str("WAYFINDER_LOG_LEVEL", &c.LogLevel)
	str("WAYFINDER_DOCS", &c.Search.Docs)
	str("WAYFINDER_SEARCH_INDEX", &c.Search.Index)
	str("WAYFINDER_SEARCH_REMOTE", &c.Search.Remote)
	str("WAYFINDER_BASE_URL", &c.Search.BaseURL)
	str("WAYFINDER_ADDR", &c.Serve.Addr)
	str("WAYFINDER_REDIS_URL", &c.Serve.RedisURL)

	if v, ok := lookup("WAYFINDER_SEARCH_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WAYFINDER_SEARCH_DELAY: %w", err)
		}
		c.Search.Delay = d
	}
	if v, ok := lookup("WAYFINDER_SEARCH_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WAYFINDER_SEARCH_LIMIT: %w", err)
		}
		c.Search.Limit = n
	}
	return c.Validate()
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if c.Search.Delay < 0 {
		errs = append(errs, fmt.Errorf("search.delay must not be negative"))
	}
	if c.Search.Limit < 1 {
		errs = append(errs, fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit))
	}
	return errors.Join(errs...)
}
