package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the to-do CLI.
type Config struct {
	ServerURL           string        `env:"TODO_SERVER_URL"`
	SessionDBPath       string        `env:"TODO_SESSION_DB"`
	OnlineCheckInterval time.Duration `env:"TODO_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"TODO_REQUEST_TIMEOUT"`
	LogLevel            string        `env:"TODO_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.SessionDBPath = "todolist-client.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q must be http(s)://host[:port]", c.ServerURL)
	}
	if c.SessionDBPath == "" {
		return errors.New("session db path is not configured")
	}
	if c.OnlineCheckInterval <= 0 || c.RequestTimeout <= 0 {
		return errors.New("intervals must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], nil)
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
