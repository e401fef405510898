package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Data      DataConfig      `yaml:"data"`
	Hevy      HevyConfig      `yaml:"hevy"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type DataConfig struct {
	Dir            string `yaml:"dir"`
	DatabasePath   string `yaml:"database_path"`
	MigrationsPath string `yaml:"migrations_path"`
}

type HevyConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// DBPath returns the configured sqlite path, defaulting to liftstats.db
// inside the data dir.
func (d DataConfig) DBPath() string {
	if d.DatabasePath != "" {
		return d.DatabasePath
	}
	return filepath.Join(d.Dir, "liftstats.db")
}

// Default returns the built-in configuration used when no config file is
// given: a localhost server and a data dir next to the binary.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Data:   DataConfig{Dir: "data", MigrationsPath: "migrations"},
		Hevy:   HevyConfig{BaseURL: "https://api.hevyapp.com", PageSize: 10},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix LIFTSTATS_ and underscore-separated
// paths:
//
//	LIFTSTATS_SERVER_HOST, LIFTSTATS_SERVER_PORT,
//	LIFTSTATS_TAILSCALE_ENABLED, LIFTSTATS_TAILSCALE_HOSTNAME,
//	LIFTSTATS_TAILSCALE_STATE_DIR,
//	LIFTSTATS_DATA_DIR, LIFTSTATS_DATA_DATABASE_PATH,
//	LIFTSTATS_HEVY_API_KEY, LIFTSTATS_HEVY_BASE_URL,
//	LIFTSTATS_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTSTATS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTSTATS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTSTATS_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("LIFTSTATS_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("LIFTSTATS_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("LIFTSTATS_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("LIFTSTATS_DATA_DATABASE_PATH"); v != "" {
		cfg.Data.DatabasePath = v
	}
	if v := os.Getenv("LIFTSTATS_HEVY_API_KEY"); v != "" {
		cfg.Hevy.APIKey = v
	}
	if v := os.Getenv("LIFTSTATS_HEVY_BASE_URL"); v != "" {
		cfg.Hevy.BaseURL = v
	}
	if v := os.Getenv("LIFTSTATS_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Data.Dir == "" && c.Data.DatabasePath == "" {
		return fmt.Errorf("data.dir or data.database_path is required")
	}
	if c.Hevy.PageSize <= 0 {
		c.Hevy.PageSize = 10
	}
	return nil
}
