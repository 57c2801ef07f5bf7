package region

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/colorBanded/rayCave/internal/server/world"
)

// Store persists chunks into region files under <worldDir>/region/. The
// header cache and all file access are serialized by a single mutex; per-chunk
// I/O cost dwarfs the contention this causes.
type Store struct {
	log *slog.Logger
	dir string

	mu      sync.Mutex
	headers map[RegionCoord]*header
}

// NewStore creates a store rooted at the world directory. The region
// subdirectory is created on first save.
func NewStore(log *slog.Logger, worldDir string) *Store {
	return &Store{
		log:     log,
		dir:     filepath.Join(worldDir, "region"),
		headers: make(map[RegionCoord]*header),
	}
}

func (s *Store) regionPath(rc RegionCoord) string {
	return filepath.Join(s.dir, rc.fileName())
}

// headerFor returns the cached header for a region, reading it from disk on a
// cache miss. A region whose file does not exist yet gets a fresh empty
// header; it exists logically before any chunk is flushed.
// Caller holds s.mu.
func (s *Store) headerFor(rc RegionCoord) (*header, error) {
	if h, ok := s.headers[rc]; ok {
		return h, nil
	}

	data, err := os.ReadFile(s.regionPath(rc))
	if err != nil {
		if os.IsNotExist(err) {
			h := &header{}
			s.headers[rc] = h
			return h, nil
		}
		return nil, fmt.Errorf("read region %v: %w", rc, err)
	}

	h, err := decodeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("region %v: %w", rc, err)
	}
	s.headers[rc] = h
	return h, nil
}

// SaveChunk appends the chunk's payload to its region file and rewrites the
// header. Old payload bytes for the same slot become unreachable garbage;
// CompactRegion reclaims them.
func (s *Store) SaveChunk(c *world.Chunk) error {
	rc := RegionCoordFromChunk(c.Coord())
	index := LocalChunkIndex(c.Coord())
	payload := c.Serialize()

	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.headerFor(rc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create region directory: %w", err)
	}

	f, err := os.OpenFile(s.regionPath(rc), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open region %v: %w", rc, err)
	}
	defer f.Close()

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek region %v: %w", rc, err)
	}
	if end < headerBytes {
		// Brand-new file: reserve the header before the first payload.
		end = headerBytes
	}

	if _, err := f.WriteAt(payload, end); err != nil {
		return fmt.Errorf("write chunk %v: %w", c.Coord(), err)
	}

	h.offsets[index] = uint32(end)
	h.sizes[index] = uint32(len(payload))
	h.lastModified[index] = uint32(time.Now().Unix())

	if _, err := f.WriteAt(h.encode(), 0); err != nil {
		return fmt.Errorf("write region header %v: %w", rc, err)
	}
	return nil
}

// LoadChunk populates the chunk from disk by its coordinate. Returns
// (false, nil) when the chunk has never been saved; corruption and I/O
// failures are errors.
func (s *Store) LoadChunk(c *world.Chunk) (bool, error) {
	rc := RegionCoordFromChunk(c.Coord())
	index := LocalChunkIndex(c.Coord())

	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.headerFor(rc)
	if err != nil {
		return false, err
	}
	if !h.hasChunk(index) {
		return false, nil
	}

	f, err := os.Open(s.regionPath(rc))
	if err != nil {
		if os.IsNotExist(err) {
			// Header cached from a save that never hit disk? Treat as absent.
			return false, nil
		}
		return false, fmt.Errorf("open region %v: %w", rc, err)
	}
	defer f.Close()

	payload := make([]byte, h.sizes[index])
	if _, err := f.ReadAt(payload, int64(h.offsets[index])); err != nil {
		return false, fmt.Errorf("read chunk %v: %w", c.Coord(), err)
	}
	if err := c.Deserialize(payload); err != nil {
		return false, fmt.Errorf("chunk %v: %w", c.Coord(), err)
	}
	c.SetLoaded(true)
	return true, nil
}

// ChunkExists reports whether the chunk has a saved payload. Unreadable
// regions report false; absence of evidence is absence.
func (s *Store) ChunkExists(coord world.ChunkCoord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.headerFor(RegionCoordFromChunk(coord))
	if err != nil {
		s.log.Warn("region header unreadable", "coord", coord, "error", err)
		return false
	}
	return h.hasChunk(LocalChunkIndex(coord))
}

// DeleteChunk tombstones the chunk's header slot. Payload bytes stay in the
// file until compaction.
func (s *Store) DeleteChunk(coord world.ChunkCoord) error {
	rc := RegionCoordFromChunk(coord)
	index := LocalChunkIndex(coord)

	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.headerFor(rc)
	if err != nil {
		return err
	}
	if !h.hasChunk(index) {
		return nil
	}

	h.offsets[index] = 0
	h.sizes[index] = 0
	h.lastModified[index] = 0

	f, err := os.OpenFile(s.regionPath(rc), os.O_RDWR, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open region %v: %w", rc, err)
	}
	defer f.Close()

	if _, err := f.WriteAt(h.encode(), 0); err != nil {
		return fmt.Errorf("write region header %v: %w", rc, err)
	}
	return nil
}

// ClearCache drops every cached header; the next access re-reads from disk.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers = make(map[RegionCoord]*header)
}

// RegionFileSize returns the on-disk size of a region file in bytes, 0 when
// the file does not exist.
func (s *Store) RegionFileSize(rc RegionCoord) int64 {
	info, err := os.Stat(s.regionPath(rc))
	if err != nil {
		return 0
	}
	return info.Size()
}

// ChunkCountInRegion returns the number of chunks stored in a region.
func (s *Store) ChunkCountInRegion(rc RegionCoord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.headerFor(rc)
	if err != nil {
		return 0
	}
	return h.chunkCount()
}

// Regions lists every region file currently on disk.
func (s *Store) Regions() ([]RegionCoord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list regions: %w", err)
	}

	var coords []RegionCoord
	for _, e := range entries {
		var rc RegionCoord
		if _, err := fmt.Sscanf(e.Name(), "r.%d.%d.mcr", &rc.X, &rc.Z); err == nil {
			coords = append(coords, rc)
		}
	}
	return coords, nil
}

// CompactRegion rewrites a region file with only its live chunks laid out
// contiguously after the header, dropping garbage left by append-only saves
// and deletions. The rewrite goes through a temp file and an atomic rename.
func (s *Store) CompactRegion(rc RegionCoord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.headerFor(rc)
	if err != nil {
		return err
	}

	path := s.regionPath(rc)
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open region %v: %w", rc, err)
	}
	defer src.Close()

	fresh := &header{}
	tmp := path + ".tmp"
	dst, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp region: %w", err)
	}

	offset := int64(headerBytes)
	for i := 0; i < ChunksPerRegion; i++ {
		if !h.hasChunk(i) {
			continue
		}
		payload := make([]byte, h.sizes[i])
		if _, err := src.ReadAt(payload, int64(h.offsets[i])); err != nil {
			dst.Close()
			os.Remove(tmp)
			return fmt.Errorf("read chunk slot %d in region %v: %w", i, rc, err)
		}
		if _, err := dst.WriteAt(payload, offset); err != nil {
			dst.Close()
			os.Remove(tmp)
			return fmt.Errorf("write temp region: %w", err)
		}
		fresh.offsets[i] = uint32(offset)
		fresh.sizes[i] = h.sizes[i]
		fresh.lastModified[i] = h.lastModified[i]
		offset += int64(h.sizes[i])
	}

	if _, err := dst.WriteAt(fresh.encode(), 0); err != nil {
		dst.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp region header: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp region: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit compacted region %v: %w", rc, err)
	}

	s.headers[rc] = fresh
	s.log.Info("compacted region", "region", rc, "chunks", fresh.chunkCount())
	return nil
}
