package region

import (
	"encoding/binary"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegionCoordinateRoundTrip(t *testing.T) {
	cases := []struct {
		chunk  world.ChunkCoord
		region RegionCoord
		index  int
	}{
		{world.ChunkCoord{X: 0, Z: 0}, RegionCoord{0, 0}, 0},
		{world.ChunkCoord{X: 31, Z: 31}, RegionCoord{0, 0}, 31*32 + 31},
		{world.ChunkCoord{X: 32, Z: 0}, RegionCoord{1, 0}, 0},
		{world.ChunkCoord{X: -1, Z: -1}, RegionCoord{-1, -1}, 31*32 + 31},
		{world.ChunkCoord{X: -32, Z: -32}, RegionCoord{-1, -1}, 0},
		{world.ChunkCoord{X: -33, Z: 5}, RegionCoord{-2, 0}, 5*32 + 31},
	}
	for _, c := range cases {
		if got := RegionCoordFromChunk(c.chunk); got != c.region {
			t.Errorf("RegionCoordFromChunk(%v) = %v, want %v", c.chunk, got, c.region)
		}
		got := LocalChunkIndex(c.chunk)
		if got != c.index {
			t.Errorf("LocalChunkIndex(%v) = %d, want %d", c.chunk, got, c.index)
		}
		if got < 0 || got >= ChunksPerRegion {
			t.Errorf("LocalChunkIndex(%v) = %d, out of [0,%d)", c.chunk, got, ChunksPerRegion)
		}
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(testLogger(), dir)

	src := world.NewChunk(world.ChunkCoord{X: -5, Z: 12})
	for y := 0; y < 64; y++ {
		src.SetBlock(y%16, y, (y*3)%16, gamedata.BlockType(1+y%26))
	}
	if err := s.SaveChunk(src); err != nil {
		t.Fatalf("SaveChunk failed: %v", err)
	}

	// Discard cached headers and read back through a brand-new store.
	s.ClearCache()
	fresh := NewStore(testLogger(), dir)

	dst := world.NewChunk(world.ChunkCoord{X: -5, Z: 12})
	found, err := fresh.LoadChunk(dst)
	if err != nil {
		t.Fatalf("LoadChunk failed: %v", err)
	}
	if !found {
		t.Fatal("LoadChunk did not find the saved chunk")
	}
	for y := 0; y < 64; y++ {
		want := src.GetBlock(y%16, y, (y*3)%16)
		if got := dst.GetBlock(y%16, y, (y*3)%16); got != want {
			t.Fatalf("block at y=%d: got %d, want %d", y, got, want)
		}
	}
}

func TestStoreLoadAbsentChunk(t *testing.T) {
	s := NewStore(testLogger(), t.TempDir())

	c := world.NewChunk(world.ChunkCoord{X: 3, Z: 3})
	found, err := s.LoadChunk(c)
	if err != nil {
		t.Fatalf("absent chunk must not be an error, got %v", err)
	}
	if found {
		t.Fatal("absent chunk reported found")
	}
	if s.ChunkExists(world.ChunkCoord{X: 3, Z: 3}) {
		t.Error("ChunkExists true for never-saved chunk")
	}
}

func TestStoreOverwriteKeepsLatest(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(testLogger(), dir)
	coord := world.ChunkCoord{X: 0, Z: 0}

	first := world.NewChunk(coord)
	first.SetBlock(1, 1, 1, gamedata.Stone)
	if err := s.SaveChunk(first); err != nil {
		t.Fatal(err)
	}
	sizeAfterFirst := s.RegionFileSize(RegionCoord{0, 0})

	second := world.NewChunk(coord)
	second.SetBlock(1, 1, 1, gamedata.Glowstone)
	if err := s.SaveChunk(second); err != nil {
		t.Fatal(err)
	}

	// Append-only: file grows on every save of the same slot.
	if got := s.RegionFileSize(RegionCoord{0, 0}); got <= sizeAfterFirst {
		t.Errorf("file size %d did not grow past %d on overwrite", got, sizeAfterFirst)
	}

	loaded := world.NewChunk(coord)
	if found, err := s.LoadChunk(loaded); err != nil || !found {
		t.Fatalf("reload failed: found=%v err=%v", found, err)
	}
	if got := loaded.GetBlock(1, 1, 1); got != gamedata.Glowstone {
		t.Errorf("after overwrite block = %d, want Glowstone", got)
	}
}

func TestStoreRejectsCorruptHeader(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(testLogger(), dir)

	c := world.NewChunk(world.ChunkCoord{X: 0, Z: 0})
	c.SetBlock(0, 0, 0, gamedata.Stone)
	if err := s.SaveChunk(c); err != nil {
		t.Fatal(err)
	}

	// Flip the magic on disk.
	path := filepath.Join(dir, "region", "r.0.0.mcr")
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	bad := make([]byte, 4)
	binary.LittleEndian.PutUint32(bad, 0xDEADBEEF)
	if _, err := f.WriteAt(bad, 0); err != nil {
		t.Fatal(err)
	}
	f.Close()

	fresh := NewStore(testLogger(), dir)
	if _, err := fresh.LoadChunk(world.NewChunk(world.ChunkCoord{X: 0, Z: 0})); err == nil {
		t.Error("corrupt region header must fail the load")
	}
}

func TestStoreDeleteChunk(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(testLogger(), dir)
	coord := world.ChunkCoord{X: 7, Z: -2}

	c := world.NewChunk(coord)
	c.SetBlock(0, 0, 0, gamedata.Stone)
	if err := s.SaveChunk(c); err != nil {
		t.Fatal(err)
	}
	if !s.ChunkExists(coord) {
		t.Fatal("chunk missing after save")
	}

	if err := s.DeleteChunk(coord); err != nil {
		t.Fatalf("DeleteChunk failed: %v", err)
	}
	if s.ChunkExists(coord) {
		t.Error("chunk still exists after delete")
	}

	// Tombstone survives a cache flush.
	fresh := NewStore(testLogger(), dir)
	if found, err := fresh.LoadChunk(world.NewChunk(coord)); err != nil || found {
		t.Errorf("deleted chunk load = (%v, %v), want (false, nil)", found, err)
	}
}

func TestStoreCompactRegion(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(testLogger(), dir)
	coord := world.ChunkCoord{X: 2, Z: 2}

	// Write the same chunk several times to pile up garbage.
	for i := 0; i < 4; i++ {
		c := world.NewChunk(coord)
		c.SetBlock(0, i, 0, gamedata.Brick)
		if err := s.SaveChunk(c); err != nil {
			t.Fatal(err)
		}
	}
	other := world.NewChunk(world.ChunkCoord{X: 3, Z: 2})
	other.SetBlock(5, 5, 5, gamedata.Obsidian)
	if err := s.SaveChunk(other); err != nil {
		t.Fatal(err)
	}

	rc := RegionCoord{0, 0}
	before := s.RegionFileSize(rc)
	if err := s.CompactRegion(rc); err != nil {
		t.Fatalf("CompactRegion failed: %v", err)
	}
	after := s.RegionFileSize(rc)
	if after >= before {
		t.Errorf("compaction did not shrink the file: %d -> %d", before, after)
	}
	if got := s.ChunkCountInRegion(rc); got != 2 {
		t.Errorf("chunk count after compaction = %d, want 2", got)
	}

	// Both chunks still load, with their latest contents.
	fresh := NewStore(testLogger(), dir)
	c := world.NewChunk(coord)
	if found, err := fresh.LoadChunk(c); err != nil || !found {
		t.Fatalf("reload after compact: found=%v err=%v", found, err)
	}
	if got := c.GetBlock(0, 3, 0); got != gamedata.Brick {
		t.Errorf("latest write lost by compaction: block = %d", got)
	}
	o := world.NewChunk(world.ChunkCoord{X: 3, Z: 2})
	if found, err := fresh.LoadChunk(o); err != nil || !found {
		t.Fatalf("second chunk lost by compaction: found=%v err=%v", found, err)
	}
}
