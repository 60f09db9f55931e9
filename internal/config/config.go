// Package config loads the netsuite CLI configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-netsuite"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "netsuite.yaml"

// Config is the top-level CLI configuration.
type Config struct {
	NetSuite NetSuiteConfig `yaml:"netsuite"`
	Client   ClientConfig   `yaml:"client"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// NetSuiteConfig holds the account and token-based credentials.
type NetSuiteConfig struct {
	Account        string `yaml:"account"`
	ConsumerKey    string `yaml:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret"`
	TokenKey       string `yaml:"token_key"`
	TokenSecret    string `yaml:"token_secret"`
	Endpoint       string `yaml:"endpoint"`
}

// ClientConfig tunes the SDK client.
type ClientConfig struct {
	TimeoutSec int         `yaml:"timeout_sec"`
	UserAgent  string      `yaml:"user_agent"`
	Retry      RetryConfig `yaml:"retry"`
}

// RetryConfig maps onto netsuite.RetryPolicy. Zero MaxAttempts disables retries.
type RetryConfig struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	BaseDelayMs       int     `yaml:"base_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads the file at path, expands ${VAR} references, applies defaults and validates.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Client.TimeoutSec == 0 {
		c.Client.TimeoutSec = 60
	}
	if c.Client.Retry.MaxAttempts > 0 {
		if c.Client.Retry.BaseDelayMs == 0 {
			c.Client.Retry.BaseDelayMs = 500
		}
		if c.Client.Retry.MaxDelayMs == 0 {
			c.Client.Retry.MaxDelayMs = 10000
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks required fields and ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.NetSuite.Account == "" {
		errs = append(errs, errors.New("netsuite.account is required"))
	}
	creds := []struct{ name, val string }{
		{"consumer_key", c.NetSuite.ConsumerKey},
		{"consumer_secret", c.NetSuite.ConsumerSecret},
		{"token_key", c.NetSuite.TokenKey},
		{"token_secret", c.NetSuite.TokenSecret},
	}
	for _, cred := range creds {
		if cred.val == "" {
			errs = append(errs, fmt.Errorf("netsuite.%s is required", cred.name))
		}
	}
	if c.Client.TimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("client.timeout_sec must not be negative, got %d", c.Client.TimeoutSec))
	}
	if c.Client.Retry.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("client.retry.max_attempts must not be negative, got %d", c.Client.Retry.MaxAttempts))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf(`logging.format must be "console" or "json", got %q`, c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ClientOptions converts the config into SDK client options.
func (c *Config) ClientOptions() []netsuite.ClientOption {
	opts := []netsuite.ClientOption{
		netsuite.WithAccount(c.NetSuite.Account),
		netsuite.WithTokenAuth(c.NetSuite.ConsumerKey, c.NetSuite.ConsumerSecret, c.NetSuite.TokenKey, c.NetSuite.TokenSecret),
		netsuite.WithTimeout(time.Duration(c.Client.TimeoutSec) * time.Second),
	}
	if c.NetSuite.Endpoint != "" {
		opts = append(opts, netsuite.WithEndpoint(c.NetSuite.Endpoint))
	}
	if c.Client.UserAgent != "" {
		opts = append(opts, netsuite.WithUserAgent(c.Client.UserAgent))
	}
	if r := c.Client.Retry; r.MaxAttempts > 0 {
		opts = append(opts, netsuite.WithRetry(netsuite.RetryPolicy{
			MaxAttempts:       r.MaxAttempts,
			BaseDelay:         time.Duration(r.BaseDelayMs) * time.Millisecond,
			MaxDelay:          time.Duration(r.MaxDelayMs) * time.Millisecond,
			RequestsPerSecond: r.RequestsPerSecond,
			Burst:             r.Burst,
		}))
	}
	return opts
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}
