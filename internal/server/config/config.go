package config

import "time"

// Config holds the engine configuration.
type Config struct {
	DataDir          string        `yaml:"data_dir"`
	Seed             int64         `yaml:"seed"`
	ViewDistance     int           `yaml:"view_distance"`  // load radius in chunks
	Workers          int           `yaml:"workers"`        // chunk worker pool size
	GeneratorType    string        `yaml:"generator_type"` // "default" or "flat"
	SpawnRadius      int           `yaml:"spawn_radius"`   // pre-generated chunks around origin
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:          "./data",
		Seed:             0,
		ViewDistance:     8,
		Workers:          4,
		GeneratorType:    "default",
		SpawnRadius:      2,
		AutosaveInterval: 5 * time.Minute,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["data-dir"] {
		cfg.DataDir = fromFile.DataDir
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["view-distance"] {
		cfg.ViewDistance = fromFile.ViewDistance
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["spawn-radius"] {
		cfg.SpawnRadius = fromFile.SpawnRadius
	}
	if !explicitFlags["autosave"] {
		cfg.AutosaveInterval = fromFile.AutosaveInterval
	}
}
