// Package config loads settings for the edgar-parser binaries from an
// optional TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultUserAgent   = "edgar-parser (admin@example.com)"
	DefaultRateLimit   = 10
	DefaultDBPath      = "edgar.db"
	DefaultCacheMaxAge = 30 * 24 * time.Hour
	DefaultListenAddr  = ":8080"
	DefaultLogLevel    = "info"
)

// Duration is a time.Duration written as "720h" in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	// UserAgent is sent with every SEC request; EDGAR rejects anonymous
	// clients.
	UserAgent      string   `toml:"user_agent"`
	RateLimit      int      `toml:"rate_limit"`
	DBPath         string   `toml:"db_path"`
	CacheMaxAge    Duration `toml:"cache_max_age"`
	ListenAddr     string   `toml:"listen_addr"`
	LogLevel       string   `toml:"log_level"`
	LogDevelopment bool     `toml:"log_development"`
}

func Default() *Config {
	return &Config{
		UserAgent:   DefaultUserAgent,
		RateLimit:   DefaultRateLimit,
		DBPath:      DefaultDBPath,
		CacheMaxAge: Duration(DefaultCacheMaxAge),
		ListenAddr:  DefaultListenAddr,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads the TOML file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.UserAgent = getEnv("EDGAR_USER_AGENT", c.UserAgent)
	c.DBPath = getEnv("EDGAR_DB_PATH", c.DBPath)
	c.LogLevel = getEnv("EDGAR_LOG_LEVEL", c.LogLevel)
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}

	if v := os.Getenv("EDGAR_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EDGAR_RATE_LIMIT %q: %w", v, err)
		}
		c.RateLimit = n
	}
	if v := os.Getenv("EDGAR_CACHE_MAX_AGE"); v != "" {
		if err := c.CacheMaxAge.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid EDGAR_CACHE_MAX_AGE %q: %w", v, err)
		}
	}
	if v := os.Getenv("EDGAR_LOG_DEVELOPMENT"); v != "" {
		c.LogDevelopment = v == "true" || v == "1" || v == "yes"
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
