package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Backends understood by the console.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendEC2    = "ec2"
)

const (
	defaultRefreshInterval = 15 * time.Second
	minRefreshInterval     = 5 * time.Second
	defaultPageSize        = 20
	defaultLatency         = 800 * time.Millisecond

	// EnvPrefix namespaces environment overrides, e.g. CLOUD_CONSOLE_BACKEND.
	EnvPrefix = "CLOUD_CONSOLE"
)

// Config holds optional defaults loaded from ~/.config/cloud-console/config.yaml.
type Config struct {
	Backend             string `yaml:"backend" mapstructure:"backend"`
	Database            string `yaml:"database" mapstructure:"database"`
	DefaultProfile      string `yaml:"default_profile" mapstructure:"default_profile"`
	DefaultRegion       string `yaml:"default_region" mapstructure:"default_region"`
	AutoRefreshInterval int    `yaml:"auto_refresh_interval" mapstructure:"auto_refresh_interval"`
	PageSize            int    `yaml:"page_size" mapstructure:"page_size"`
	// SimulatedLatencyMS is a pointer so an explicit 0 disables the delay.
	SimulatedLatencyMS *int   `yaml:"simulated_latency_ms" mapstructure:"simulated_latency_ms"`
	LogFile            string `yaml:"log_file" mapstructure:"log_file"`
	LogLevel           string `yaml:"log_level" mapstructure:"log_level"`
	UserDataFile       string `yaml:"user_data_file" mapstructure:"user_data_file"`
}

// Dir is the directory holding the config, user data, database and log.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "cloud-console")
	}
	return filepath.Join(home, ".config", "cloud-console")
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// NewViper returns a viper instance reading CLOUD_CONSOLE_* environment
// variables. Callers bind their flags to it before calling Overlay.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Overlay applies every key that is set in v (a changed flag or an
// environment variable) on top of the file values.
func (c *Config) Overlay(v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	str("backend", &c.Backend)
	str("database", &c.Database)
	str("default_profile", &c.DefaultProfile)
	str("default_region", &c.DefaultRegion)
	str("log_file", &c.LogFile)
	str("log_level", &c.LogLevel)
	str("user_data_file", &c.UserDataFile)
	num("auto_refresh_interval", &c.AutoRefreshInterval)
	num("page_size", &c.PageSize)
	if v.IsSet("simulated_latency_ms") {
		ms := v.GetInt("simulated_latency_ms")
		c.SimulatedLatencyMS = &ms
	}
}

// Validate rejects unknown backends.
func (c *Config) Validate() error {
	switch c.BackendOrDefault() {
	case BackendMemory, BackendSQLite, BackendEC2:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want memory, sqlite or ec2)", c.Backend)
}

func (c *Config) BackendOrDefault() string {
	if c.Backend == "" {
		return BackendMemory
	}
	return c.Backend
}

func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return c.Database
	}
	return filepath.Join(Dir(), "console.db")
}

func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(Dir(), "console.log")
}

func (c *Config) UserDataPath() string {
	if c.UserDataFile != "" {
		return c.UserDataFile
	}
	return filepath.Join(Dir(), "user_data.json")
}

// RefreshInterval returns the auto-refresh interval, defaulting to 15s with a 5s floor.
func (c *Config) RefreshInterval() time.Duration {
	if c.AutoRefreshInterval <= 0 {
		return defaultRefreshInterval
	}
	d := time.Duration(c.AutoRefreshInterval) * time.Second
	if d < minRefreshInterval {
		return minRefreshInterval
	}
	return d
}

func (c *Config) PageSizeOrDefault() int {
	if c.PageSize <= 0 {
		return defaultPageSize
	}
	return c.PageSize
}

// Latency is the simulated delay before every mutation.
func (c *Config) Latency() time.Duration {
	if c.SimulatedLatencyMS == nil {
		return defaultLatency
	}
	if *c.SimulatedLatencyMS < 0 {
		return 0
	}
	return time.Duration(*c.SimulatedLatencyMS) * time.Millisecond
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}
