package config

import "github.com/abrezinsky/totebet/internal/tote"

// Default values for optional configuration fields.
const (
	DefaultRaceName     = tote.DefaultRaceName
	DefaultPort         = 8080
	DefaultDatabasePath = ":memory:"
	DefaultLogLevel     = "info"
)

// DefaultCommissions returns the house take offered when none is configured.
func DefaultCommissions() map[string]string {
	return map[string]string{"W": "0.15", "P": "0.12", "E": "0.18"}
}

// Default returns a complete configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// Race defaults
	if c.Race.Name == "" {
		c.Race.Name = DefaultRaceName
	}
	if len(c.Race.Commissions) == 0 {
		c.Race.Commissions = DefaultCommissions()
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	// Database defaults
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
