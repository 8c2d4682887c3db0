package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type typedConf struct {
	Name   string     `json:"name"`
	Server serverConf `json:"server"`
	Level  string     `json:"level"`
}

func (c *typedConf) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c *typedConf) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}
	return nil
}

func writeConf(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTyped(t *testing.T) {
	path := writeConf(t, "config.yaml", `name: app
server:
  host: localhost
  port: 5432
`)
	var cfg typedConf
	if err := LoadTyped(path, &cfg); err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"name", cfg.Name, "app"},
		{"server.host", cfg.Server.Host, "localhost"},
		{"server.port", cfg.Server.Port, 5432},
		{"level default", cfg.Level, "info"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadTypedEnvOverride(t *testing.T) {
	path := writeConf(t, "config.yaml", "name: app\nserver:\n  host: a\n  port: 1\n")
	t.Setenv("CONFECT_SERVER__PORT", "9")

	var cfg typedConf
	if err := LoadTyped(path, &cfg); err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Port != 9 {
		t.Errorf("port = %d, want override 9", cfg.Server.Port)
	}
}

func TestLoadTypedEnvPrefix(t *testing.T) {
	path := writeConf(t, "config.yaml", "name: app\nserver:\n  port: 1\n")
	t.Setenv("APP_SERVER__PORT", "7")

	var cfg typedConf
	if err := LoadTyped(path, &cfg, WithEnvPrefix("APP_")); err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Port != 7 {
		t.Errorf("port = %d, want override 7", cfg.Server.Port)
	}
}

func TestLoadTypedValidate(t *testing.T) {
	path := writeConf(t, "config.yaml", "name: app\nserver:\n  port: 0\n")

	var cfg typedConf
	if err := LoadTyped(path, &cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadTypedUnsupportedFormat(t *testing.T) {
	path := writeConf(t, "config.toml", "name = 'app'\n")

	var cfg typedConf
	if err := LoadTyped(path, &cfg); err == nil {
		t.Fatal("expected format error")
	}
}
