package world

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/colorBanded/rayCave/internal/gamedata"
)

// Chunk dimensions. A chunk is a 16×256×16 column of blocks, the unit of
// generation, loading and saving.
const (
	ChunkSize      = 16
	ChunkHeight    = 256
	BlocksPerChunk = ChunkSize * ChunkSize * ChunkHeight
)

// Chunk payload framing: 3-byte magic, 1-byte version, two int32 coordinates,
// then one byte per block.
const (
	chunkPayloadVersion = 1
	chunkHeaderBytes    = 4 + 8
	// ChunkPayloadBytes is the exact serialized size of a chunk.
	ChunkPayloadBytes = chunkHeaderBytes + BlocksPerChunk
)

// ChunkCoord identifies a chunk on the infinite horizontal grid.
type ChunkCoord struct {
	X, Z int
}

// ChunkCoordFromWorld converts world-space coordinates to the owning chunk
// coordinate, flooring toward negative infinity.
func ChunkCoordFromWorld(worldX, worldZ float64) ChunkCoord {
	return ChunkCoord{
		X: int(math.Floor(worldX / ChunkSize)),
		Z: int(math.Floor(worldZ / ChunkSize)),
	}
}

// WorldOrigin returns the world-space position of the chunk's minimum corner.
func (c ChunkCoord) WorldOrigin() (x, z float64) {
	return float64(c.X * ChunkSize), float64(c.Z * ChunkSize)
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Chunk owns a dense array of block ids addressed by x + z*16 + y*256.
type Chunk struct {
	coord  ChunkCoord
	blocks [BlocksPerChunk]gamedata.BlockType

	generated bool
	dirty     bool
	loaded    bool
}

// NewChunk creates an all-air chunk at the given coordinate.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{coord: coord}
}

// Coord returns the chunk's grid coordinate.
func (c *Chunk) Coord() ChunkCoord { return c.coord }

// Generated reports whether world generation or a successful load has
// populated the chunk.
func (c *Chunk) Generated() bool { return c.generated }

// Dirty reports whether the chunk has been mutated since its last save.
func (c *Chunk) Dirty() bool { return c.dirty }

// Loaded reports whether the chunk is resident in memory.
func (c *Chunk) Loaded() bool { return c.loaded }

// SetGenerated marks the chunk as populated.
func (c *Chunk) SetGenerated(v bool) { c.generated = v }

// SetDirty marks or clears the needs-save flag.
func (c *Chunk) SetDirty(v bool) { c.dirty = v }

// SetLoaded marks the chunk resident or evicted.
func (c *Chunk) SetLoaded(v bool) { c.loaded = v }

func blockIndex(x, y, z int) int {
	return x + z*ChunkSize + y*ChunkSize*ChunkSize
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize &&
		y >= 0 && y < ChunkHeight &&
		z >= 0 && z < ChunkSize
}

// GetBlock returns the block at local coordinates. Out-of-range coordinates
// read as air; neighbor-face culling probes past chunk edges constantly, so
// this is a normal query, not an error.
func (c *Chunk) GetBlock(x, y, z int) gamedata.BlockType {
	if !inBounds(x, y, z) {
		return gamedata.Air
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock writes a block at local coordinates. Out-of-range writes are
// no-ops. The dirty flag is only raised when the value actually changes so
// redundant writes do not force re-saves.
func (c *Chunk) SetBlock(x, y, z int, t gamedata.BlockType) {
	if !inBounds(x, y, z) {
		return
	}
	i := blockIndex(x, y, z)
	if c.blocks[i] == t {
		return
	}
	c.blocks[i] = t
	c.dirty = true
}

// Fill sets every block in the chunk to the given type.
func (c *Chunk) Fill(t gamedata.BlockType) {
	for i := range c.blocks {
		c.blocks[i] = t
	}
	c.dirty = true
}

// Clear resets the chunk to all air.
func (c *Chunk) Clear() { c.Fill(gamedata.Air) }

// HeightAt returns the y of the highest non-air block in the column, or -1
// for an empty column.
func (c *Chunk) HeightAt(x, z int) int {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return -1
	}
	for y := ChunkHeight - 1; y >= 0; y-- {
		if c.blocks[blockIndex(x, y, z)] != gamedata.Air {
			return y
		}
	}
	return -1
}

// Serialize produces the self-describing chunk payload: "CHK", version,
// embedded coordinates, then one byte per block. The format is deliberately
// uncompressed so payload size is fixed and round-trips are byte-exact.
func (c *Chunk) Serialize() []byte {
	data := make([]byte, ChunkPayloadBytes)
	data[0], data[1], data[2] = 'C', 'H', 'K'
	data[3] = chunkPayloadVersion
	binary.LittleEndian.PutUint32(data[4:8], uint32(int32(c.coord.X)))
	binary.LittleEndian.PutUint32(data[8:12], uint32(int32(c.coord.Z)))
	for i, b := range c.blocks {
		data[chunkHeaderBytes+i] = byte(b)
	}
	return data
}

// Deserialize validates and loads a serialized payload into the chunk. The
// embedded coordinate must match the chunk's own coordinate; a mismatch is
// corruption and leaves the chunk untouched. On success the chunk is marked
// generated and clean.
func (c *Chunk) Deserialize(data []byte) error {
	if len(data) < chunkHeaderBytes {
		return fmt.Errorf("chunk payload too short: %d bytes", len(data))
	}
	if data[0] != 'C' || data[1] != 'H' || data[2] != 'K' {
		return fmt.Errorf("bad chunk magic %q", data[:3])
	}
	if data[3] != chunkPayloadVersion {
		return fmt.Errorf("unsupported chunk payload version %d", data[3])
	}

	fileX := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	fileZ := int(int32(binary.LittleEndian.Uint32(data[8:12])))
	if fileX != c.coord.X || fileZ != c.coord.Z {
		return fmt.Errorf("chunk coordinate mismatch: payload (%d,%d), expected %v",
			fileX, fileZ, c.coord)
	}

	if len(data) < ChunkPayloadBytes {
		return fmt.Errorf("chunk payload truncated: %d of %d bytes", len(data), ChunkPayloadBytes)
	}

	for i := range c.blocks {
		c.blocks[i] = gamedata.BlockType(data[chunkHeaderBytes+i])
	}
	c.generated = true
	c.dirty = false
	return nil
}
