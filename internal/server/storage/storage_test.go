package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/colorBanded/rayCave/internal/server/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCreatesLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, d := range []string{dir, s.WorldDir(), filepath.Join(dir, "data")} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s missing after New", d)
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s, err := New(t.TempDir(), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 987654
	cfg.ViewDistance = 12
	cfg.GeneratorType = "flat"
	cfg.AutosaveInterval = 90 * time.Second
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded := config.DefaultConfig()
	if err := s.LoadConfig(loaded); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Seed != 987654 || loaded.ViewDistance != 12 ||
		loaded.GeneratorType != "flat" || loaded.AutosaveInterval != 90*time.Second {
		t.Errorf("config did not round-trip: %+v", loaded)
	}
}

func TestLoadConfigMissingFileIsNoop(t *testing.T) {
	s, err := New(t.TempDir(), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 42
	if err := s.LoadConfig(cfg); err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("missing config mutated cfg: seed = %d", cfg.Seed)
	}
}
