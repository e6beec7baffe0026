package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
)

const (
	// DefaultAPIURL is the local development endpoint used when nothing
	// else is configured
	DefaultAPIURL = "http://localhost:3300/api"

	// DefaultCacheTTL is the staleness window for cached query results
	DefaultCacheTTL = 5 * time.Minute

	// DefaultRequestTimeout is the fixed per-request HTTP timeout
	DefaultRequestTimeout = 10 * time.Second

	configFileName      = "config.yaml"
	credentialsFileName = "credentials.json"
)

// Config holds client configuration.
//
// Values are resolved in precedence order: defaults, then the config file
// in the home directory, then environment variables.
type Config struct {
	// APIURL is the base URL of the Naxum API
	APIURL string `yaml:"api_url"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// CacheTTL is the staleness window for cached query results
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// RequestTimeout is the per-request HTTP timeout
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Home is the directory holding the config file and stored credentials
	Home string `yaml:"-"`
}

// Default returns the built-in configuration rooted at the given home
// directory. An empty home resolves to ~/.naxum.
func Default(home string) *Config {
	if home == "" {
		if userHome, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(userHome, ".naxum")
		} else {
			home = ".naxum"
		}
	}

	return &Config{
		APIURL:         DefaultAPIURL,
		LogLevel:       "warn",
		CacheTTL:       DefaultCacheTTL,
		RequestTimeout: DefaultRequestTimeout,
		Home:           home,
	}
}

// Load resolves the effective configuration for the given home directory.
//
// A missing config file is not an error; defaults and environment take over.
func Load(home string) (*Config, error) {
	cfg := Default(home)

	path := filepath.Join(cfg.Home, configFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid config file: %s", path), err)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeConfigRead,
			fmt.Sprintf("failed to read config file: %s", path), err)
	}

	if apiURL := os.Getenv("NAXUM_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if level := os.Getenv("NAXUM_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return cfg, nil
}

// CredentialsPath returns the location of the persisted credential store.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Home, credentialsFileName)
}

// Save writes the configuration to the config file in the home directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Home, 0700); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to encode config", err)
	}

	path := filepath.Join(c.Home, configFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead,
			fmt.Sprintf("failed to write config file: %s", path), err)
	}

	return nil
}
