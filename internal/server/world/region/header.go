package region

import (
	"encoding/binary"
	"fmt"

	"github.com/colorBanded/rayCave/internal/server/world"
)

// A region covers 32×32 chunks. The header indexes every slot; a slot with
// offset==0 and size==0 has never been written.
const (
	RegionSize      = 32
	ChunksPerRegion = RegionSize * RegionSize

	headerMagic   = 0x52454749 // "REGI"
	headerVersion = 1
	// headerBytes is the fixed on-disk header size: magic, version, then
	// three uint32 tables of 1024 entries each.
	headerBytes = 8 + 3*4*ChunksPerRegion
)

// RegionCoord identifies one region file on the grid of regions.
type RegionCoord struct {
	X, Z int
}

// RegionCoordFromChunk floor-divides a chunk coordinate down to its region,
// correct for negative chunks: chunk (-1,-1) lives in region (-1,-1).
func RegionCoordFromChunk(c world.ChunkCoord) RegionCoord {
	return RegionCoord{X: floorDiv(c.X, RegionSize), Z: floorDiv(c.Z, RegionSize)}
}

// LocalChunkIndex returns the chunk's slot in its region header, z*32+x with
// remainders adjusted into [0, 32).
func LocalChunkIndex(c world.ChunkCoord) int {
	lx := mod(c.X, RegionSize)
	lz := mod(c.Z, RegionSize)
	return lz*RegionSize + lx
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func (r RegionCoord) String() string {
	return fmt.Sprintf("(%d,%d)", r.X, r.Z)
}

// fileName is the region's file name, r.<x>.<z>.mcr.
func (r RegionCoord) fileName() string {
	return fmt.Sprintf("r.%d.%d.mcr", r.X, r.Z)
}

// header is the in-memory form of a region file's index.
type header struct {
	offsets      [ChunksPerRegion]uint32
	sizes        [ChunksPerRegion]uint32
	lastModified [ChunksPerRegion]uint32
}

// hasChunk reports whether the slot holds a chunk.
func (h *header) hasChunk(index int) bool {
	if index < 0 || index >= ChunksPerRegion {
		return false
	}
	return h.offsets[index] != 0 || h.sizes[index] != 0
}

// chunkCount returns the number of occupied slots.
func (h *header) chunkCount() int {
	n := 0
	for i := range h.offsets {
		if h.hasChunk(i) {
			n++
		}
	}
	return n
}

// encode serializes the header to its fixed on-disk layout.
func (h *header) encode() []byte {
	data := make([]byte, headerBytes)
	binary.LittleEndian.PutUint32(data[0:4], headerMagic)
	binary.LittleEndian.PutUint32(data[4:8], headerVersion)
	off := 8
	for i := 0; i < ChunksPerRegion; i++ {
		binary.LittleEndian.PutUint32(data[off+i*4:], h.offsets[i])
	}
	off += 4 * ChunksPerRegion
	for i := 0; i < ChunksPerRegion; i++ {
		binary.LittleEndian.PutUint32(data[off+i*4:], h.sizes[i])
	}
	off += 4 * ChunksPerRegion
	for i := 0; i < ChunksPerRegion; i++ {
		binary.LittleEndian.PutUint32(data[off+i*4:], h.lastModified[i])
	}
	return data
}

// decodeHeader validates magic and version and parses the index tables.
// Unknown magic and newer versions are both hard failures; the store never
// partially recovers a malformed region file.
func decodeHeader(data []byte) (*header, error) {
	if len(data) < headerBytes {
		return nil, fmt.Errorf("region header truncated: %d of %d bytes", len(data), headerBytes)
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != headerMagic {
		return nil, fmt.Errorf("bad region magic 0x%08x", magic)
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != headerVersion {
		return nil, fmt.Errorf("unsupported region version %d", v)
	}

	h := &header{}
	off := 8
	for i := 0; i < ChunksPerRegion; i++ {
		h.offsets[i] = binary.LittleEndian.Uint32(data[off+i*4:])
	}
	off += 4 * ChunksPerRegion
	for i := 0; i < ChunksPerRegion; i++ {
		h.sizes[i] = binary.LittleEndian.Uint32(data[off+i*4:])
	}
	off += 4 * ChunksPerRegion
	for i := 0; i < ChunksPerRegion; i++ {
		h.lastModified[i] = binary.LittleEndian.Uint32(data[off+i*4:])
	}
	return h, nil
}
