package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines the service configuration. Values come from an optional
// YAML file named by CONFIG_FILE, overridden by environment variables.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"VOLTMAP_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"VOLTMAP_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"VOLTMAP_REDIS_ADDR"`
		Password string `yaml:"password" env:"VOLTMAP_REDIS_PASSWORD"`
		TTL      int    `yaml:"ttlSeconds" env:"VOLTMAP_REDIS_TTL"`
	} `yaml:"redis"`
	Import struct {
		Path string `yaml:"path" env:"VOLTMAP_STATIONS_FILE"`
	} `yaml:"import"`
	Search struct {
		Limit       int     `yaml:"limit" env:"VOLTMAP_SEARCH_LIMIT"`
		MaxDistance float64 `yaml:"maxDistanceMeters" env:"VOLTMAP_SEARCH_MAX_DISTANCE"`
	} `yaml:"search"`
}

// Load reads configuration and applies defaults. The database DSN is the
// only required value; an empty redis addr disables the station cache.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "5000"
	cfg.Redis.TTL = 300
	cfg.Import.Path = "data/stations.json"
	cfg.Search.Limit = 10
	cfg.Search.MaxDistance = 10000

	if err := hydrate(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.Search.Limit <= 0 {
		cfg.Search.Limit = 10
	}
	if cfg.Search.MaxDistance <= 0 {
		cfg.Search.MaxDistance = 10000
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "5000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// CacheEnabled reports whether a redis addr was configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// CacheTTL returns the station cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTL) * time.Second
}
