package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Runtime   RuntimeConfig   `yaml:"runtime"`
}

type TelemetryConfig struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

type RuntimeConfig struct {
	NodeBinary   string        `yaml:"node_binary"`
	PHPBinary    string        `yaml:"php_binary"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

func DefaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".quick-cicd"
	}
	return filepath.Join(homeDir, ".quick-cicd")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

func TelemetryDBPath() string {
	return filepath.Join(DefaultConfigDir(), "telemetry.db")
}

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Runtime.NodeBinary == "" {
		cfg.Runtime.NodeBinary = "node"
	}
	if cfg.Runtime.PHPBinary == "" {
		cfg.Runtime.PHPBinary = "php"
	}
	if cfg.Runtime.ProbeTimeout <= 0 {
		cfg.Runtime.ProbeTimeout = 10 * time.Second
	}
	if cfg.Telemetry.RetentionDays <= 0 {
		cfg.Telemetry.RetentionDays = 30
	}

	return cfg, nil
}

// DefaultConfig keeps telemetry off: nothing is stored unless the user opts in.
func DefaultConfig() *Config {
	return &Config{
		Telemetry: TelemetryConfig{
			Enabled:       false,
			RetentionDays: 30,
		},
		Runtime: RuntimeConfig{
			NodeBinary:   "node",
			PHPBinary:    "php",
			ProbeTimeout: 10 * time.Second,
		},
	}
}

func SaveConfig(configPath string, cfg *Config) error {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}
