package gamedata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDictionaryLookups(t *testing.T) {
	d := DefaultDictionary()

	stone := d.Get(Stone)
	if stone.Name != "stone" {
		t.Errorf("Get(Stone).Name = %q, want \"stone\"", stone.Name)
	}
	if stone.Hardness != 1.5 {
		t.Errorf("stone hardness = %v, want 1.5", stone.Hardness)
	}

	if id, ok := d.ByName("bedrock"); !ok || id != Bedrock {
		t.Errorf("ByName(\"bedrock\") = (%d, %v), want (%d, true)", id, ok, Bedrock)
	}
}

func TestDictionaryUnknownIDFallsBack(t *testing.T) {
	d := DefaultDictionary()

	b := d.Get(BlockType(200))
	if b == nil {
		t.Fatal("Get for unknown id returned nil")
	}
	if b.Name != "unknown" {
		t.Errorf("fallback block name = %q, want \"unknown\"", b.Name)
	}
}

func TestDictionaryTransparency(t *testing.T) {
	d := DefaultDictionary()

	if !d.IsTransparent(Air) {
		t.Error("air must be transparent")
	}
	if !d.IsTransparent(Glass) {
		t.Error("glass must be transparent")
	}
	if d.IsTransparent(Stone) {
		t.Error("stone must not be transparent")
	}
}

func TestLoadDictionaryOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	yaml := `blocks:
  3:
    name: stone
    display_name: Hard Stone
    hardness: 9.5
    breakable: true
  40:
    name: marble
    display_name: Marble
    hardness: 2.5
    breakable: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}

	// Overridden entry.
	if got := d.Get(Stone).Hardness; got != 9.5 {
		t.Errorf("overridden stone hardness = %v, want 9.5", got)
	}
	// New entry.
	if id, ok := d.ByName("marble"); !ok || id != BlockType(40) {
		t.Errorf("ByName(\"marble\") = (%d, %v), want (40, true)", id, ok)
	}
	// Untouched default survives.
	if got := d.Get(Dirt).Name; got != "dirt" {
		t.Errorf("dirt entry lost after overlay: name = %q", got)
	}
}

func TestBlockFaceTextures(t *testing.T) {
	d := DefaultDictionary()

	grass := d.Get(Grass)
	if got := grass.Texture(FaceTop); got != "grass_top.png" {
		t.Errorf("grass top texture = %q, want grass_top.png", got)
	}
	// Missing face falls back to "all".
	if got := grass.Texture(FaceEast); got != "grass_side.png" {
		t.Errorf("grass east texture = %q, want grass_side.png", got)
	}
}
