package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level deepfinance.yaml configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Server    ServerConfig    `yaml:"server"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// DataConfig locates the scraped CSV data directory.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DashboardConfig sets default windows for the derived views.
type DashboardConfig struct {
	DefaultPeriod  string `yaml:"default_period"`  // period token, e.g. "3M"
	VelocityWindow int    `yaml:"velocity_window"` // days
}

// Load reads a deepfinance.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(dataDir string) *Config {
	return &Config{
		Data: DataConfig{
			Dir: dataDir,
		},
		Server: ServerConfig{
			Listen: ":8000",
		},
		Dashboard: DashboardConfig{
			DefaultPeriod:  "3M",
			VelocityWindow: 30,
		},
	}
}
