package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the voter directory service configuration.
type AppConfig struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Data       DataConfig       `yaml:"data"`
	Logging    LoggingConfig    `yaml:"logging"`
	Pagination PaginationConfig `yaml:"pagination"`
	Search     SearchSettings   `yaml:"search"`
	Cache      CacheConfig      `yaml:"cache"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// DataConfig locates the voter dataset.
type DataConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"` // rebuild indexes when the file changes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // local, dev, prod
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// PaginationConfig bounds result pages.
type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// CacheConfig sizes the per-index result cache. Size 0 disables it.
type CacheConfig struct {
	Size *int `yaml:"size"`
}

// Load reads configuration from a YAML file. An empty path yields defaults.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return AppConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *AppConfig) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.Data.Path == "" {
		c.Data.Path = "data/voters.json"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	if c.Pagination.DefaultPageSize <= 0 {
		c.Pagination.DefaultPageSize = 25
	}
	if c.Pagination.MaxPageSize <= 0 {
		c.Pagination.MaxPageSize = 500
	}
	if c.Cache.Size == nil {
		size := 256
		c.Cache.Size = &size
	}
	c.Search.ApplyDefaults()
}

// CacheSize returns the configured cache size.
func (c *AppConfig) CacheSize() int {
	if c.Cache.Size == nil {
		return 0
	}
	return *c.Cache.Size
}

// Validate checks the configuration for correctness.
func (c *AppConfig) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("pagination.default_page_size (%d) exceeds max_page_size (%d)",
			c.Pagination.DefaultPageSize, c.Pagination.MaxPageSize)
	}
	if c.Cache.Size != nil && *c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", *c.Cache.Size)
	}
	switch c.Logging.Env {
	case "local", "dev", "docker", "prod":
	default:
		return fmt.Errorf("logging.env must be one of local, dev, docker, prod, got %q", c.Logging.Env)
	}
	if problems := c.Search.Validate(); len(problems) > 0 {
		return fmt.Errorf("search: %s", strings.Join(problems, "; "))
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
