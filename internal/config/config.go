package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the tote's runtime configuration.
type Config struct {
	Race     RaceConfig     `yaml:"race"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// RaceConfig describes the single race this process runs.
type RaceConfig struct {
	Name string `yaml:"name"`
	Date string `yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	// Commissions maps product codes (W, P, E) to the fraction withheld,
	// e.g. "0.15". Products left out are not offered.
	Commissions map[string]string `yaml:"commissions" validate:"required,min=1,dive,keys,oneof=W P E,endkeys,required"`
}

type ServerConfig struct {
	Port          int    `yaml:"port" validate:"min=1,max=65535"`
	BaseURL       string `yaml:"base_url" validate:"omitempty,url"`
	AdminPassword string `yaml:"admin_password"`
	HTTPLogging   bool   `yaml:"http_logging"`
}

type DatabaseConfig struct {
	// Path of the SQLite journal. ":memory:" keeps it for the life of the process.
	Path string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
