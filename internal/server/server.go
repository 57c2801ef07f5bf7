package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/config"
	"github.com/colorBanded/rayCave/internal/server/storage"
	"github.com/colorBanded/rayCave/internal/server/world"
	"github.com/colorBanded/rayCave/internal/server/world/gen"
	"github.com/colorBanded/rayCave/internal/server/world/region"
)

// Server wires the block dictionary, terrain generator, region store and
// chunk manager into a running world engine.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *storage.Storage
	blocks  *gamedata.Dictionary
	manager *world.Manager
}

// New creates a Server with the given config and logger.
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		return nil, err
	}

	blocks, err := loadDictionary(store.BlockDataPath(), log)
	if err != nil {
		return nil, err
	}

	var generator world.Generator
	switch cfg.GeneratorType {
	case "flat":
		generator = gen.NewFlatGenerator(cfg.Seed)
	default:
		generator = gen.NewDefaultGenerator(cfg.Seed)
	}

	regions := region.NewStore(log, store.WorldDir())
	manager := world.NewManager(log, generator, regions, store.WorldDir(), cfg.ViewDistance, cfg.Workers)

	return &Server{
		cfg:     cfg,
		log:     log,
		store:   store,
		blocks:  blocks,
		manager: manager,
	}, nil
}

// loadDictionary prefers the on-disk block definitions and falls back to the
// built-in table when the file is absent.
func loadDictionary(path string, log *slog.Logger) (*gamedata.Dictionary, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Info("no block definitions file, using built-in blocks")
			return gamedata.DefaultDictionary(), nil
		}
		return nil, fmt.Errorf("stat block definitions: %w", err)
	}
	d, err := gamedata.LoadDictionary(path)
	if err != nil {
		return nil, err
	}
	log.Info("loaded block definitions", "path", path, "blocks", d.Len())
	return d, nil
}

// World exposes the chunk manager to callers embedding the engine.
func (s *Server) World() *world.Manager { return s.manager }

// Blocks exposes the block dictionary.
func (s *Server) Blocks() *gamedata.Dictionary { return s.blocks }

// Start initializes the world, pre-generates the spawn area and runs until
// the context is cancelled, then shuts the world down saving every dirty
// chunk.
func (s *Server) Start(ctx context.Context) error {
	if err := s.manager.Initialize(); err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}

	s.log.Info("engine started",
		"dataDir", s.cfg.DataDir,
		"generator", s.cfg.GeneratorType,
		"seed", s.cfg.Seed,
		"viewDistance", s.cfg.ViewDistance,
		"workers", s.cfg.Workers,
	)

	if s.cfg.SpawnRadius > 0 {
		s.manager.PreGenerateSpawnChunks(s.cfg.SpawnRadius)
	}

	autosave := time.NewTicker(s.cfg.AutosaveInterval)
	defer autosave.Stop()
	stats := time.NewTicker(time.Minute)
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("engine shutting down")
			return s.manager.Shutdown()

		case <-autosave.C:
			if err := s.manager.SaveAllChunks(); err != nil {
				s.log.Error("autosave failed", "error", err)
			}

		case <-stats.C:
			generated, loaded, saved := s.manager.Stats()
			s.log.Info("world stats",
				"resident", s.manager.LoadedCount(),
				"queued", s.manager.QueuedCount(),
				"generated", generated,
				"loadedFromDisk", loaded,
				"saved", saved,
			)
		}
	}
}
