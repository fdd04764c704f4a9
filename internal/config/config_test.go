package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapforge.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[generation]
width = 120
recipe = "cave"
snapshots = true

[logging]
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Generation.Width != 120 {
		t.Errorf("width: %d != 120", cfg.Generation.Width)
	}
	if cfg.Generation.Height != 50 {
		t.Errorf("height kept default: %d != 50", cfg.Generation.Height)
	}
	if cfg.Generation.Recipe != "cave" || !cfg.Generation.Snapshots {
		t.Errorf("generation: %+v", cfg.Generation)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Errorf("logging: %+v", cfg.Logging)
	}
	if cfg.Telemetry.Dataset != "mapforge" {
		t.Errorf("telemetry dataset: %q != mapforge", cfg.Telemetry.Dataset)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "[generation\nwidth = ")); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Generation.Width != 80 || cfg.Generation.Depth != 3 {
		t.Errorf("defaults: %+v", cfg.Generation)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("MAPFORGE_CONFIG", "")
	if p := Path(""); p != DefaultPath {
		t.Errorf("Path: %q != %q", p, DefaultPath)
	}
	t.Setenv("MAPFORGE_CONFIG", "/etc/mapforge.toml")
	if p := Path(""); p != "/etc/mapforge.toml" {
		t.Errorf("Path from env: %q", p)
	}
	if p := Path("local.toml"); p != "local.toml" {
		t.Errorf("explicit Path: %q", p)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MAPFORGE_WIDTH":      "64",
		"MAPFORGE_SEED":       "42",
		"MAPFORGE_RECIPE":     "maze",
		"MAPFORGE_SNAPSHOTS":  "true",
		"MAPFORGE_LOG_LEVEL":  "debug",
		"MAPFORGE_DIFFICULTY": " 2 ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := defaults()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	g := cfg.Generation
	if g.Width != 64 || g.Seed != 42 || g.Recipe != "maze" || !g.Snapshots || g.Difficulty != 2 {
		t.Errorf("generation after env: %+v", g)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level: %q != debug", cfg.Logging.Level)
	}

	env["MAPFORGE_HEIGHT"] = "tall"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected error for non-numeric height")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"too narrow", func(c *Config) { c.Generation.Width = 5 }, false},
		{"depth zero", func(c *Config) { c.Generation.Depth = 0 }, false},
		{"negative difficulty", func(c *Config) { c.Generation.Difficulty = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate: %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
