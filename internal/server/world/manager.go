package world

import (
	"container/heap"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/colorBanded/rayCave/internal/gamedata"
)

// Generator produces terrain. Generate must be a pure function of the
// generator's seed and the chunk's coordinate so that "regenerate if not on
// disk" is stable across runs.
type Generator interface {
	Generate(c *Chunk)
	HeightAt(blockX, blockZ int) int
	Seed() int64
}

// Store persists chunks. LoadChunk returns (false, nil) when the chunk has
// never been saved; errors are reserved for I/O failures and corruption.
type Store interface {
	SaveChunk(c *Chunk) error
	LoadChunk(c *Chunk) (bool, error)
	ChunkExists(coord ChunkCoord) bool
}

// Manager owns the loaded-chunk table and the worker pool that loads,
// generates and saves chunks around the observer.
//
// All shared state below mu is guarded by that one mutex. cond is signalled
// whenever work is enqueued or stop is raised.
type Manager struct {
	log   *slog.Logger
	gen   Generator
	store Store

	worldDir     string
	loadDistance int
	workerCount  int

	mu       sync.Mutex
	cond     *sync.Cond
	loaded   map[ChunkCoord]*Chunk
	queue    genQueue
	queued   map[ChunkCoord]struct{}
	inflight map[ChunkCoord]struct{}
	saves    []*Chunk
	stop     bool

	wg sync.WaitGroup

	lastChunk    ChunkCoord
	hasLastChunk bool

	generatedCount int
	loadedCount    int
	savedCount     int
}

// NewManager wires a manager over a generator and a store. Workers are not
// started until Initialize.
func NewManager(log *slog.Logger, gen Generator, store Store, worldDir string, loadDistance, workers int) *Manager {
	if loadDistance < 1 {
		loadDistance = 1
	}
	if workers < 1 {
		workers = 1
	}
	m := &Manager{
		log:          log,
		gen:          gen,
		store:        store,
		worldDir:     worldDir,
		loadDistance: loadDistance,
		workerCount:  workers,
		loaded:       make(map[ChunkCoord]*Chunk),
		queued:       make(map[ChunkCoord]struct{}),
		inflight:     make(map[ChunkCoord]struct{}),
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Initialize creates the world directory, reconciles the persisted seed and
// starts the worker pool. When the directory holds no world.dat yet, the
// generator's seed is persisted immediately so the world is reproducible from
// its first chunk.
func (m *Manager) Initialize() error {
	if err := os.MkdirAll(m.worldDir, 0o755); err != nil {
		return fmt.Errorf("create world directory: %w", err)
	}

	seed, ok, err := ReadWorldMeta(m.worldDir)
	if err != nil {
		return err
	}
	if ok {
		if seed != int64(int32(m.gen.Seed())) {
			m.log.Warn("world seed differs from configured seed, using persisted value",
				"persisted", seed, "configured", m.gen.Seed())
		}
		m.log.Info("loaded existing world", "dir", m.worldDir, "seed", seed)
	} else {
		if err := WriteWorldMeta(m.worldDir, m.gen.Seed()); err != nil {
			return err
		}
		m.log.Info("created new world", "dir", m.worldDir, "seed", m.gen.Seed())
	}

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	return nil
}

// worker alternates one generation pop and one save pop per wakeup so neither
// queue starves the other. It parks on the condition variable when both
// queues are empty.
func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for {
		m.mu.Lock()
		for !m.stop && len(m.queue) == 0 && len(m.saves) == 0 {
			m.cond.Wait()
		}
		if m.stop {
			m.mu.Unlock()
			return
		}

		var genCoord ChunkCoord
		haveGen := false
		if len(m.queue) > 0 {
			item := heap.Pop(&m.queue).(priorityChunk)
			delete(m.queued, item.coord)
			if _, resident := m.loaded[item.coord]; !resident {
				if _, busy := m.inflight[item.coord]; !busy {
					m.inflight[item.coord] = struct{}{}
					genCoord = item.coord
					haveGen = true
				}
			}
		}

		var save *Chunk
		if len(m.saves) > 0 {
			save = m.saves[0]
			m.saves = m.saves[1:]
		}
		m.mu.Unlock()

		if haveGen {
			chunk := m.loadOrGenerate(genCoord)
			m.mu.Lock()
			delete(m.inflight, genCoord)
			if _, resident := m.loaded[genCoord]; !resident {
				m.loaded[genCoord] = chunk
			}
			m.mu.Unlock()
		}

		if save != nil {
			m.persist(save)
		}
	}
}

// loadOrGenerate produces a populated chunk for the coordinate, preferring
// disk over regeneration. Corrupt on-disk data fails closed and the chunk is
// regenerated.
func (m *Manager) loadOrGenerate(coord ChunkCoord) *Chunk {
	chunk := NewChunk(coord)

	found, err := m.store.LoadChunk(chunk)
	if err != nil {
		m.log.Warn("chunk load failed, regenerating", "coord", coord, "error", err)
	}
	if found && err == nil {
		chunk.SetLoaded(true)
		m.mu.Lock()
		m.loadedCount++
		m.mu.Unlock()
		return chunk
	}

	m.gen.Generate(chunk)
	chunk.SetGenerated(true)
	chunk.SetDirty(true)
	chunk.SetLoaded(true)
	m.mu.Lock()
	m.generatedCount++
	m.mu.Unlock()
	return chunk
}

// persist writes a chunk to the store. A failed save keeps the dirty flag so
// the chunk stays a save candidate for the next eviction or shutdown sweep.
func (m *Manager) persist(c *Chunk) {
	if !c.Dirty() {
		return
	}
	if err := m.store.SaveChunk(c); err != nil {
		m.log.Error("chunk save failed", "coord", c.Coord(), "error", err)
		return
	}
	c.SetDirty(false)
	m.mu.Lock()
	m.savedCount++
	m.mu.Unlock()
}

// RequestChunk queues a coordinate for asynchronous load-or-generate at the
// given priority. Already-loaded, already-queued and in-flight coordinates
// are skipped.
func (m *Manager) RequestChunk(coord ChunkCoord, priority float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestLocked(coord, priority)
}

func (m *Manager) requestLocked(coord ChunkCoord, priority float64) {
	if m.stop {
		return
	}
	if _, ok := m.loaded[coord]; ok {
		return
	}
	if _, ok := m.queued[coord]; ok {
		return
	}
	if _, ok := m.inflight[coord]; ok {
		return
	}
	heap.Push(&m.queue, priorityChunk{coord: coord, priority: priority})
	m.queued[coord] = struct{}{}
	m.cond.Signal()
}

// UpdatePlayerPosition drives streaming from the observer. It is debounced by
// chunk crossing: nothing happens until the observer enters a new chunk. On a
// crossing the chunk underfoot and its four axis-neighbors are made resident
// synchronously (the observer must never stand on unloaded ground), the rest
// of the load radius is scheduled through the priority queue with a
// directional discount along the velocity, and chunks beyond loadDistance+1
// are evicted.
func (m *Manager) UpdatePlayerPosition(pos, velocity mgl64.Vec3) {
	center := ChunkCoordFromWorld(pos.X(), pos.Z())

	m.mu.Lock()
	if m.hasLastChunk && center == m.lastChunk {
		m.mu.Unlock()
		return
	}
	m.lastChunk = center
	m.hasLastChunk = true
	m.mu.Unlock()

	m.ensureResident(center)
	m.ensureResident(ChunkCoord{center.X + 1, center.Z})
	m.ensureResident(ChunkCoord{center.X - 1, center.Z})
	m.ensureResident(ChunkCoord{center.X, center.Z + 1})
	m.ensureResident(ChunkCoord{center.X, center.Z - 1})

	m.scheduleAround(center, velocity)
	m.evictBeyond(center, m.loadDistance+1)
}

// ensureResident loads or generates a chunk on the calling goroutine,
// bypassing the queue. Used for the chunks directly around the observer.
func (m *Manager) ensureResident(coord ChunkCoord) {
	m.mu.Lock()
	if _, ok := m.loaded[coord]; ok {
		m.mu.Unlock()
		return
	}
	if _, busy := m.inflight[coord]; busy {
		// A worker already owns it; it will land in the table shortly.
		m.mu.Unlock()
		return
	}
	m.inflight[coord] = struct{}{}
	m.mu.Unlock()

	chunk := m.loadOrGenerate(coord)

	m.mu.Lock()
	delete(m.inflight, coord)
	if _, ok := m.loaded[coord]; !ok {
		m.loaded[coord] = chunk
	}
	m.mu.Unlock()
}

// scheduleAround queues every missing chunk within loadDistance of the
// center, nearest rings first.
func (m *Manager) scheduleAround(center ChunkCoord, velocity mgl64.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, coord := range GetChunksInRadius(center, m.loadDistance) {
		m.requestLocked(coord, chunkPriority(coord, center, velocity))
	}
}

// evictBeyond removes loaded chunks outside the keep radius (Chebyshev).
// Dirty chunks are handed to the save queue before removal so their data
// survives eviction.
func (m *Manager) evictBeyond(center ChunkCoord, keep int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for coord, chunk := range m.loaded {
		dx, dz := abs(coord.X-center.X), abs(coord.Z-center.Z)
		if dx <= keep && dz <= keep {
			continue
		}
		if chunk.Dirty() {
			m.saves = append(m.saves, chunk)
			m.cond.Signal()
		}
		chunk.SetLoaded(false)
		delete(m.loaded, coord)
		evicted++
	}
	if evicted > 0 {
		m.log.Debug("evicted chunks", "count", evicted, "center", center)
	}
}

// PreGenerateSpawnChunks synchronously makes every chunk within radius of the
// origin resident. Called once at startup so a fresh world has ground before
// the first observer update.
func (m *Manager) PreGenerateSpawnChunks(radius int) {
	coords := GetChunksInRadius(ChunkCoord{0, 0}, radius)
	m.log.Info("pre-generating spawn area", "radius", radius, "chunks", len(coords))
	for _, coord := range coords {
		m.ensureResident(coord)
	}
}

// GetChunk returns the loaded chunk at coord, or nil when it is not resident.
// It never triggers a load.
func (m *Manager) GetChunk(coord ChunkCoord) *Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded[coord]
}

// GetChunkWithNeighbors returns the chunk plus its four cardinal neighbors
// (nil where not resident), in center/+x/-x/+z/-z order. Face culling at
// chunk borders needs all five.
func (m *Manager) GetChunkWithNeighbors(coord ChunkCoord) [5]*Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return [5]*Chunk{
		m.loaded[coord],
		m.loaded[ChunkCoord{coord.X + 1, coord.Z}],
		m.loaded[ChunkCoord{coord.X - 1, coord.Z}],
		m.loaded[ChunkCoord{coord.X, coord.Z + 1}],
		m.loaded[ChunkCoord{coord.X, coord.Z - 1}],
	}
}

// worldToLocal splits a world block coordinate into chunk and in-chunk parts,
// adjusting the remainder into [0, ChunkSize) for negative coordinates.
func worldToLocal(worldX, worldZ int) (coord ChunkCoord, localX, localZ int) {
	coord.X = worldX / ChunkSize
	coord.Z = worldZ / ChunkSize
	localX = worldX % ChunkSize
	localZ = worldZ % ChunkSize
	if localX < 0 {
		localX += ChunkSize
		coord.X--
	}
	if localZ < 0 {
		localZ += ChunkSize
		coord.Z--
	}
	return coord, localX, localZ
}

// GetBlock reads a block at world coordinates. Unloaded chunks read as air;
// callers that need to distinguish "air" from "not resident" use GetChunk.
func (m *Manager) GetBlock(worldX, worldY, worldZ int) gamedata.BlockType {
	coord, lx, lz := worldToLocal(worldX, worldZ)
	chunk := m.GetChunk(coord)
	if chunk == nil {
		return gamedata.Air
	}
	return chunk.GetBlock(lx, worldY, lz)
}

// SetBlock writes a block at world coordinates. Writes into unloaded chunks
// are silent no-ops, never blocking loads.
func (m *Manager) SetBlock(worldX, worldY, worldZ int, t gamedata.BlockType) {
	coord, lx, lz := worldToLocal(worldX, worldZ)
	chunk := m.GetChunk(coord)
	if chunk == nil {
		return
	}
	chunk.SetBlock(lx, worldY, lz, t)
}

// SurfaceHeight returns the terrain height the generator would produce at the
// given world column. Resident chunks answer from actual blocks so edits are
// reflected.
func (m *Manager) SurfaceHeight(worldX, worldZ int) int {
	coord, lx, lz := worldToLocal(worldX, worldZ)
	if chunk := m.GetChunk(coord); chunk != nil {
		if h := chunk.HeightAt(lx, lz); h >= 0 {
			return h
		}
	}
	return m.gen.HeightAt(worldX, worldZ)
}

// SaveAllChunks synchronously persists every dirty loaded chunk. Returns the
// first error but keeps going so one bad chunk does not block the rest.
func (m *Manager) SaveAllChunks() error {
	m.mu.Lock()
	dirty := make([]*Chunk, 0, len(m.loaded))
	for _, chunk := range m.loaded {
		if chunk.Dirty() {
			dirty = append(dirty, chunk)
		}
	}
	m.mu.Unlock()

	var firstErr error
	saved := 0
	for _, chunk := range dirty {
		if err := m.store.SaveChunk(chunk); err != nil {
			m.log.Error("chunk save failed", "coord", chunk.Coord(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		chunk.SetDirty(false)
		saved++
	}
	if saved > 0 {
		m.log.Info("saved dirty chunks", "count", saved)
	}
	return firstErr
}

// Shutdown stops the worker pool, drains the save queue and persists every
// remaining dirty chunk. After an orderly shutdown no in-memory edit is lost.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	m.stop = true
	m.cond.Broadcast()
	remaining := m.saves
	m.saves = nil
	m.mu.Unlock()

	m.wg.Wait()

	// Evicted chunks that were still queued for saving.
	for _, chunk := range remaining {
		m.persist(chunk)
	}

	if err := m.SaveAllChunks(); err != nil {
		return err
	}

	m.mu.Lock()
	m.loaded = make(map[ChunkCoord]*Chunk)
	m.queue = nil
	m.queued = make(map[ChunkCoord]struct{})
	m.mu.Unlock()

	m.log.Info("world manager stopped",
		"generated", m.generatedCount, "loaded", m.loadedCount, "saved", m.savedCount)
	return nil
}

// LoadedCount returns the number of resident chunks.
func (m *Manager) LoadedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loaded)
}

// QueuedCount returns the number of pending generation requests.
func (m *Manager) QueuedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// PendingSaves returns the number of evicted chunks awaiting persistence.
func (m *Manager) PendingSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

// Stats returns lifetime generation/load/save counters.
func (m *Manager) Stats() (generated, loaded, saved int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generatedCount, m.loadedCount, m.savedCount
}

// GetChunksInRadius enumerates the coordinates within a Chebyshev radius of
// the center, center first, then ring by ring outward. The center is included
// even at radius 0.
func GetChunksInRadius(center ChunkCoord, radius int) []ChunkCoord {
	if radius < 0 {
		radius = 0
	}
	coords := make([]ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	coords = append(coords, center)
	for r := 1; r <= radius; r++ {
		// Top and bottom edges of the ring.
		for x := -r; x <= r; x++ {
			coords = append(coords, ChunkCoord{center.X + x, center.Z - r})
			coords = append(coords, ChunkCoord{center.X + x, center.Z + r})
		}
		// Left and right edges, corners already covered.
		for z := -r + 1; z <= r-1; z++ {
			coords = append(coords, ChunkCoord{center.X - r, center.Z + z})
			coords = append(coords, ChunkCoord{center.X + r, center.Z + z})
		}
	}
	return coords
}
