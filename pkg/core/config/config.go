package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadFromEnv
const (
	EnvConfigPath = "WACHTURM_CONFIG"
	EnvAPIURL     = "WACHTURM_API_URL"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	API     APIConfig     `toml:"api" yaml:"api"`
	Logs    LogsConfig    `toml:"logs" yaml:"logs"`
	Node    NodeConfig    `toml:"node" yaml:"node"`
	MockAPI MockAPIConfig `toml:"mockapi" yaml:"mockapi"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// APIConfig holds the telemetry backend connection
type APIConfig struct {
	BaseURL string   `toml:"base_url" yaml:"base_url"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// LogsConfig holds intrusion log polling settings
type LogsConfig struct {
	Interval Duration `toml:"interval" yaml:"interval"`
	Capacity int      `toml:"capacity" yaml:"capacity"`
}

// NodeConfig holds node sample polling settings
type NodeConfig struct {
	Interval Duration `toml:"interval" yaml:"interval"`
	Capacity int      `toml:"capacity" yaml:"capacity"`
}

// MockAPIConfig holds settings of the local mock backend
type MockAPIConfig struct {
	Addr         string   `toml:"addr" yaml:"addr"`
	Retention    int      `toml:"retention" yaml:"retention"`
	EmitInterval Duration `toml:"emit_interval" yaml:"emit_interval"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the WACHTURM_CONFIG environment variable.
// Without it the default locations are tried; if none exists the defaults are used.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		cfg := Default()
		cfg.applyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

func defaultPaths() []string {
	paths := []string{
		"./configs/wachturm.toml",
		"./wachturm.toml",
		"./wachturm.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config/wachturm/config.toml"),
			filepath.Join(home, ".config/wachturm/config.yaml"),
		)
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	// API
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:6000"
	}
	if c.API.Timeout.Duration == 0 {
		c.API.Timeout.Duration = 10 * time.Second
	}

	// Logs
	if c.Logs.Interval.Duration == 0 {
		c.Logs.Interval.Duration = 500 * time.Millisecond
	}
	if c.Logs.Capacity == 0 {
		c.Logs.Capacity = 100
	}

	// Node
	if c.Node.Interval.Duration == 0 {
		c.Node.Interval.Duration = 5 * time.Second
	}
	if c.Node.Capacity == 0 {
		c.Node.Capacity = 10
	}

	// Mock API
	if c.MockAPI.Addr == "" {
		c.MockAPI.Addr = ":6000"
	}
	if c.MockAPI.Retention == 0 {
		c.MockAPI.Retention = 500
	}
	if c.MockAPI.EmitInterval.Duration == 0 {
		c.MockAPI.EmitInterval.Duration = 250 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.API.BaseURL = os.ExpandEnv(c.API.BaseURL)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
}

// Validate checks value ranges and the backend address
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if c.API.Timeout.Duration < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Logs.Interval.Duration <= 0 {
		return fmt.Errorf("logs.interval must be positive")
	}
	if c.Logs.Capacity <= 0 {
		return fmt.Errorf("logs.capacity must be positive")
	}
	if c.Node.Interval.Duration <= 0 {
		return fmt.Errorf("node.interval must be positive")
	}
	if c.Node.Capacity <= 0 {
		return fmt.Errorf("node.capacity must be positive")
	}
	if c.MockAPI.Retention <= 0 {
		return fmt.Errorf("mockapi.retention must be positive")
	}
	return nil
}
