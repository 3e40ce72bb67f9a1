package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Data struct {
		CacheDir     string `yaml:"cache_dir"`
		StateDir     string `yaml:"state_dir"`
		TradesFile   string `yaml:"trades_file"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"data"`
	Alpaca struct {
		APIKey    string        `yaml:"api_key"`
		APISecret string        `yaml:"api_secret"`
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"alpaca"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// Provider credentials usually arrive through the environment so they stay
// out of the config file.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		c.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		c.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		c.Alpaca.BaseURL = v
	}
	if v := os.Getenv("CHART_CACHE_DIR"); v != "" {
		c.Data.CacheDir = v
	}
	if v := os.Getenv("CHART_STATE_DIR"); v != "" {
		c.Data.StateDir = v
	}
	if v := os.Getenv("CHART_TRADES_FILE"); v != "" {
		c.Data.TradesFile = v
	}

	return c, nil
}

// Validate checks if the configuration is valid. The server can run with no
// cache, no provider, and no trades; it degrades to empty responses. Only
// structural settings are mandatory.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Data.TemplatesDir == "" {
		return fmt.Errorf("data.templates_dir is required")
	}
	if (c.Alpaca.APIKey == "") != (c.Alpaca.APISecret == "") {
		return fmt.Errorf("alpaca credentials must be set together")
	}
	if c.Alpaca.Timeout <= 0 {
		c.Alpaca.Timeout = 10 * time.Second
	}
	return nil
}

// ProviderEnabled reports whether live market data is configured.
func (c *Config) ProviderEnabled() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}
