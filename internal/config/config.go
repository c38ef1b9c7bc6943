// Package config loads the console's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the console configuration. Zero values in a file keep the
// defaults.
type Config struct {
	Listen    string `yaml:"listen"`
	ZonesDir  string `yaml:"zones_dir"`
	StorePath string `yaml:"store_path"`
	Engine    Engine `yaml:"engine"`
}

// Engine tunes the simplification engine.
type Engine struct {
	CacheSize            int  `yaml:"cache_size"`
	SnapshotBelow        int  `yaml:"snapshot_below"`
	ScanLimit            int  `yaml:"scan_limit"`
	LexicographicExtreme bool `yaml:"lexicographic_extreme"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		ZonesDir: "nfz-polygons",
		Engine: Engine{
			CacheSize:     4096,
			SnapshotBelow: 64,
			ScanLimit:     512,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("config: listen must not be empty")
	}
	if c.Engine.CacheSize < 0 {
		return fmt.Errorf("config: engine.cache_size must be >= 0, got %d", c.Engine.CacheSize)
	}
	if c.Engine.SnapshotBelow < 0 {
		return fmt.Errorf("config: engine.snapshot_below must be >= 0, got %d", c.Engine.SnapshotBelow)
	}
	if c.Engine.ScanLimit < 0 {
		return fmt.Errorf("config: engine.scan_limit must be >= 0, got %d", c.Engine.ScanLimit)
	}
	return nil
}
