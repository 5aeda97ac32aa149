package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/abrezinsky/totebet/internal/tote"
)

func TestLoad(t *testing.T) {
	yaml := `
race:
  name: Melbourne Cup
  date: 2026-11-03
  commissions:
    W: 0.15
    E: "0.2"
server:
  port: 9000
  base_url: http://tote.local:9000
database:
  path: /tmp/tote.db
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Race.Name != "Melbourne Cup" {
		t.Errorf("Race.Name = %q, want %q", cfg.Race.Name, "Melbourne Cup")
	}
	if cfg.Race.Date != "2026-11-03" {
		t.Errorf("Race.Date = %q, want %q", cfg.Race.Date, "2026-11-03")
	}
	if cfg.Race.Commissions["W"] != "0.15" || cfg.Race.Commissions["E"] != "0.2" {
		t.Errorf("Race.Commissions = %v", cfg.Race.Commissions)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/tote.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_ADMIN_PASSWORD", "secret123")

	yaml := `
server:
  admin_password: ${TEST_ADMIN_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.AdminPassword != "secret123" {
		t.Errorf("Server.AdminPassword = %q, want %q", cfg.Server.AdminPassword, "secret123")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Errorf("expected read error, got %v", err)
	}

	path := writeTempFile(t, "race: [not, a, map")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config yaml") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "race:\n  date: 2026-10-19\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Race.Name != DefaultRaceName {
		t.Errorf("Race.Name = %q, want default %q", cfg.Race.Name, DefaultRaceName)
	}
	if len(cfg.Race.Commissions) != 3 || cfg.Race.Commissions["P"] != "0.12" {
		t.Errorf("Race.Commissions = %v, want defaults", cfg.Race.Commissions)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %q, want default %q", cfg.Database.Path, DefaultDatabasePath)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempFile(t, "race:\n  commissions:\n    W: 1.5\n")

	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.HasPrefix(err.Error(), "validate config: race.commissions") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	commissions, err := cfg.RaceCommissions()
	if err != nil {
		t.Fatalf("RaceCommissions failed: %v", err)
	}
	if !commissions[tote.Exacta].Equal(decimal.RequireFromString("0.18")) {
		t.Errorf("E commission = %s, want 0.18", commissions[tote.Exacta])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing commissions",
			mutate:  func(c *Config) { c.Race.Commissions = nil },
			wantErr: "race.commissions is required",
		},
		{
			name:    "unknown product",
			mutate:  func(c *Config) { c.Race.Commissions = map[string]string{"X": "0.1"} },
			wantErr: "race.commissions[X] must be one of [W P E], got X",
		},
		{
			name:    "blank commission",
			mutate:  func(c *Config) { c.Race.Commissions = map[string]string{"W": ""} },
			wantErr: "race.commissions[W] is required",
		},
		{
			name:    "commission not a number",
			mutate:  func(c *Config) { c.Race.Commissions = map[string]string{"W": "lots"} },
			wantErr: "race.commissions: Commission must be at least 0 and less than 1",
		},
		{
			name:    "commission of one",
			mutate:  func(c *Config) { c.Race.Commissions = map[string]string{"P": "1"} },
			wantErr: "race.commissions: Commission must be at least 0 and less than 1",
		},
		{
			name:    "bad date",
			mutate:  func(c *Config) { c.Race.Date = "19/10/2026" },
			wantErr: "race.date must be a date formatted 2006-01-02",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be <= 65535, got 70000",
		},
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.Server.BaseURL = "not a url" },
			wantErr: "server.base_url must be a URL",
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path is required",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level must be one of [debug info warn warning error], got loud",
		},
		{
			name:    "valid config",
			mutate:  func(c *Config) { c.Race.Date = "2026-10-19"; c.Server.BaseURL = "http://10.0.0.5:8080" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
