// Package storage manages the on-disk data directory: configuration,
// the world directory and static data files.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colorBanded/rayCave/internal/server/config"
)

// Storage handles file-based persistence rooted at a data directory.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "world"),
		filepath.Join(dir, "data"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// WorldDir returns the directory holding world.dat and the region files.
func (s *Storage) WorldDir() string {
	return filepath.Join(s.dir, "world")
}

// BlockDataPath returns the block-definition file path, which may not exist;
// the dictionary falls back to built-ins when it doesn't.
func (s *Storage) BlockDataPath() string {
	return filepath.Join(s.dir, "data", "blocks.yaml")
}

// LoadConfig reads config.yaml into cfg. A missing file leaves cfg unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg to config.yaml atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.yaml")
	return s.atomicWriteYAML(path, cfg)
}

// atomicWriteYAML marshals v and writes it via a temp file and rename so a
// crash mid-write never leaves a truncated file behind.
func (s *Storage) atomicWriteYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
