// Package config loads mapforge settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is used when neither --config nor MAPFORGE_CONFIG is set.
const DefaultPath = "mapforge.toml"

type Config struct {
	Generation GenerationConfig `toml:"generation"`
	Logging    LoggingConfig    `toml:"logging"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
}

type GenerationConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Depth      int    `toml:"depth"`
	Difficulty int    `toml:"difficulty"`
	Seed       int64  `toml:"seed"`   // 0 = time-based
	Recipe     string `toml:"recipe"` // empty = chosen by depth
	Snapshots  bool   `toml:"snapshots"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	Dataset  string `toml:"dataset"`
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	return cfg, err
}

// Path returns the config file location: explicit if set, then
// MAPFORGE_CONFIG, then DefaultPath.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("MAPFORGE_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// ApplyEnv overrides settings from MAPFORGE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MAPFORGE_WIDTH", &c.Generation.Width},
		{"MAPFORGE_HEIGHT", &c.Generation.Height},
		{"MAPFORGE_DEPTH", &c.Generation.Depth},
		{"MAPFORGE_DIFFICULTY", &c.Generation.Difficulty},
	}
	for _, e := range ints {
		if v, ok := lookup(e.key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}
	if v, ok := lookup("MAPFORGE_SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("MAPFORGE_SEED: %w", err)
		}
		c.Generation.Seed = n
	}
	if v, ok := lookup("MAPFORGE_SNAPSHOTS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MAPFORGE_SNAPSHOTS: %w", err)
		}
		c.Generation.Snapshots = b
	}
	if v, ok := lookup("MAPFORGE_TELEMETRY"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MAPFORGE_TELEMETRY: %w", err)
		}
		c.Telemetry.Enabled = b
	}
	if v, ok := lookup("MAPFORGE_RECIPE"); ok {
		c.Generation.Recipe = v
	}
	if v, ok := lookup("MAPFORGE_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("MAPFORGE_LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	return nil
}

// Validate rejects settings no level can be built from.
func (c *Config) Validate() error {
	g := c.Generation
	if g.Width < 10 || g.Height < 10 {
		return fmt.Errorf("map size %dx%d is too small (minimum 10x10)", g.Width, g.Height)
	}
	if g.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", g.Depth)
	}
	if g.Difficulty < 0 {
		return fmt.Errorf("difficulty must not be negative, got %d", g.Difficulty)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Generation: GenerationConfig{
			Width:      80,
			Height:     50,
			Depth:      3,
			Difficulty: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Endpoint: "https://api.honeycomb.io",
			Dataset:  "mapforge",
		},
	}
}
