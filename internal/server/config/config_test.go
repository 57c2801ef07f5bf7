package config

import (
	"testing"
	"time"
)

func TestMergePrefersExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 111
	cfg.ViewDistance = 3

	fromFile := DefaultConfig()
	fromFile.Seed = 222
	fromFile.ViewDistance = 10
	fromFile.GeneratorType = "flat"
	fromFile.AutosaveInterval = time.Minute

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	if cfg.Seed != 111 {
		t.Errorf("explicit seed overridden: %d", cfg.Seed)
	}
	if cfg.ViewDistance != 10 {
		t.Errorf("file view distance not applied: %d", cfg.ViewDistance)
	}
	if cfg.GeneratorType != "flat" {
		t.Errorf("file generator not applied: %s", cfg.GeneratorType)
	}
	if cfg.AutosaveInterval != time.Minute {
		t.Errorf("file autosave not applied: %v", cfg.AutosaveInterval)
	}
}
