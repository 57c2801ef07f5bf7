package world

import (
	"testing"

	"github.com/colorBanded/rayCave/internal/gamedata"
)

func TestChunkCoordFromWorld(t *testing.T) {
	cases := []struct {
		wx, wz float64
		want   ChunkCoord
	}{
		{0, 0, ChunkCoord{0, 0}},
		{15.9, 15.9, ChunkCoord{0, 0}},
		{16, 16, ChunkCoord{1, 1}},
		{-0.5, -0.5, ChunkCoord{-1, -1}},
		{-16, -16, ChunkCoord{-1, -1}},
		{-16.1, -16.1, ChunkCoord{-2, -2}},
	}
	for _, c := range cases {
		if got := ChunkCoordFromWorld(c.wx, c.wz); got != c.want {
			t.Errorf("ChunkCoordFromWorld(%v, %v) = %v, want %v", c.wx, c.wz, got, c.want)
		}
	}
}

func TestChunkSetGetAndDirty(t *testing.T) {
	c := NewChunk(ChunkCoord{0, 0})

	if c.Dirty() {
		t.Fatal("fresh chunk must not be dirty")
	}
	c.SetBlock(3, 64, 7, gamedata.Stone)
	if got := c.GetBlock(3, 64, 7); got != gamedata.Stone {
		t.Errorf("GetBlock = %d, want Stone", got)
	}
	if !c.Dirty() {
		t.Error("chunk must be dirty after a changing write")
	}

	// Redundant write must not re-dirty a clean chunk.
	c.SetDirty(false)
	c.SetBlock(3, 64, 7, gamedata.Stone)
	if c.Dirty() {
		t.Error("writing the same value must not mark the chunk dirty")
	}
}

func TestChunkOutOfBoundsAccess(t *testing.T) {
	c := NewChunk(ChunkCoord{0, 0})

	// Reads outside the chunk are air, writes are no-ops; neither panics.
	if got := c.GetBlock(-1, 0, 0); got != gamedata.Air {
		t.Errorf("out-of-bounds read = %d, want Air", got)
	}
	if got := c.GetBlock(0, ChunkHeight, 0); got != gamedata.Air {
		t.Errorf("out-of-bounds read = %d, want Air", got)
	}
	c.SetBlock(16, 0, 0, gamedata.Stone)
	c.SetBlock(0, -1, 0, gamedata.Stone)
	if c.Dirty() {
		t.Error("out-of-bounds write must not dirty the chunk")
	}
}

func TestChunkSerializeRoundTrip(t *testing.T) {
	src := NewChunk(ChunkCoord{-3, 7})
	// Non-uniform pattern across the whole volume.
	for y := 0; y < ChunkHeight; y += 5 {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				src.SetBlock(x, y, z, gamedata.BlockType((x+y+z)%27))
			}
		}
	}

	data := src.Serialize()
	if len(data) != ChunkPayloadBytes {
		t.Fatalf("payload size = %d, want %d", len(data), ChunkPayloadBytes)
	}

	dst := NewChunk(ChunkCoord{-3, 7})
	if err := dst.Deserialize(data); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if !dst.Generated() {
		t.Error("deserialized chunk must be marked generated")
	}
	if dst.Dirty() {
		t.Error("deserialized chunk must be clean")
	}
	for y := 0; y < ChunkHeight; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				if got, want := dst.GetBlock(x, y, z), src.GetBlock(x, y, z); got != want {
					t.Fatalf("block (%d,%d,%d) = %d, want %d", x, y, z, got, want)
				}
			}
		}
	}
}

func TestChunkDeserializeRejectsCoordinateMismatch(t *testing.T) {
	src := NewChunk(ChunkCoord{0, 0})
	src.Fill(gamedata.Stone)
	data := src.Serialize()

	dst := NewChunk(ChunkCoord{1, 0})
	dst.SetBlock(0, 0, 0, gamedata.Dirt)
	if err := dst.Deserialize(data); err == nil {
		t.Fatal("Deserialize must reject a coordinate mismatch")
	}
	// Target untouched.
	if got := dst.GetBlock(0, 0, 0); got != gamedata.Dirt {
		t.Errorf("target mutated by rejected deserialize: block = %d", got)
	}
	if got := dst.GetBlock(5, 5, 5); got != gamedata.Air {
		t.Errorf("target mutated by rejected deserialize: block = %d", got)
	}
}

func TestChunkDeserializeRejectsBadPayloads(t *testing.T) {
	c := NewChunk(ChunkCoord{0, 0})
	good := c.Serialize()

	bad := append([]byte(nil), good...)
	bad[0] = 'X'
	if err := c.Deserialize(bad); err == nil {
		t.Error("bad magic must be rejected")
	}

	bad = append([]byte(nil), good...)
	bad[3] = 9
	if err := c.Deserialize(bad); err == nil {
		t.Error("unsupported version must be rejected")
	}

	if err := c.Deserialize(good[:100]); err == nil {
		t.Error("truncated payload must be rejected")
	}
}

func TestChunkHeightAt(t *testing.T) {
	c := NewChunk(ChunkCoord{0, 0})
	if got := c.HeightAt(4, 4); got != -1 {
		t.Errorf("empty column height = %d, want -1", got)
	}
	c.SetBlock(4, 10, 4, gamedata.Stone)
	c.SetBlock(4, 63, 4, gamedata.Grass)
	if got := c.HeightAt(4, 4); got != 63 {
		t.Errorf("HeightAt = %d, want 63", got)
	}
}
