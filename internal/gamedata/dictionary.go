package gamedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dictionary is the read-only registry mapping block ids to their
// properties. It is built once at startup and passed by reference into every
// component that needs it; there is no global accessor.
type Dictionary struct {
	blocks   map[BlockType]*Block
	byName   map[string]BlockType
	fallback Block
}

// DefaultDictionary returns a Dictionary populated with the built-in block
// table. It is always complete enough to run without any data files.
func DefaultDictionary() *Dictionary {
	d := &Dictionary{
		blocks: make(map[BlockType]*Block, len(defaultBlocks)),
		byName: make(map[string]BlockType, len(defaultBlocks)),
		fallback: Block{
			Name:        "unknown",
			DisplayName: "Unknown Block",
			Hardness:    1.0,
			Breakable:   true,
			SoundGroup:  "stone",
		},
	}
	for id, b := range defaultBlocks {
		blk := b
		d.blocks[id] = &blk
		d.byName[b.Name] = id
	}
	return d
}

// LoadDictionary reads a YAML block-definition file and overlays it on the
// built-in defaults. Entries in the file replace or extend the defaults by
// id; ids absent from the file keep their built-in properties.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block definitions: %w", err)
	}

	var file struct {
		Blocks map[BlockType]Block `yaml:"blocks"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse block definitions: %w", err)
	}

	d := DefaultDictionary()
	for id, b := range file.Blocks {
		blk := b
		d.blocks[id] = &blk
		if blk.Name != "" {
			d.byName[blk.Name] = id
		}
	}
	return d, nil
}

// Get returns the properties of a block type. Unknown ids return a safe
// fallback block rather than nil so callers never have to branch on missing
// dictionary entries.
func (d *Dictionary) Get(t BlockType) *Block {
	if b, ok := d.blocks[t]; ok {
		return b
	}
	return &d.fallback
}

// ByName resolves a block name to its id.
func (d *Dictionary) ByName(name string) (BlockType, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// Len returns the number of registered block types.
func (d *Dictionary) Len() int {
	return len(d.blocks)
}

// IsTransparent reports whether the block type lets neighbors' faces show
// through. Air is always transparent.
func (d *Dictionary) IsTransparent(t BlockType) bool {
	if t == Air {
		return true
	}
	return d.Get(t).Transparent
}

var defaultBlocks = map[BlockType]Block{
	Air:         {Name: "air", DisplayName: "Air", Transparent: true, Breakable: false, Hardness: 0},
	Grass:       {Name: "grass", DisplayName: "Grass Block", Hardness: 0.6, Breakable: true, SoundGroup: "grass", Flammable: false, Textures: map[string]string{FaceTop: "grass_top.png", FaceBottom: "dirt.png", FaceAll: "grass_side.png"}},
	Dirt:        {Name: "dirt", DisplayName: "Dirt", Hardness: 0.5, Breakable: true, SoundGroup: "gravel", Textures: map[string]string{FaceAll: "dirt.png"}},
	Stone:       {Name: "stone", DisplayName: "Stone", Hardness: 1.5, Breakable: true, SoundGroup: "stone", Drops: []Drop{{Block: Cobblestone, Count: 1}}, Textures: map[string]string{FaceAll: "stone.png"}},
	Wood:        {Name: "wood", DisplayName: "Wood Log", Hardness: 2.0, Breakable: true, Flammable: true, SoundGroup: "wood", Textures: map[string]string{FaceTop: "log_top.png", FaceBottom: "log_top.png", FaceAll: "log_side.png"}},
	Cobblestone: {Name: "cobblestone", DisplayName: "Cobblestone", Hardness: 2.0, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "cobblestone.png"}},
	Sand:        {Name: "sand", DisplayName: "Sand", Hardness: 0.5, Breakable: true, SoundGroup: "sand", Textures: map[string]string{FaceAll: "sand.png"}},
	Water:       {Name: "water", DisplayName: "Water", Transparent: true, Liquid: true, Breakable: false, SoundGroup: "liquid", Textures: map[string]string{FaceAll: "water.png"}},
	Lava:        {Name: "lava", DisplayName: "Lava", Liquid: true, Breakable: false, LightLevel: 15, SoundGroup: "liquid", Textures: map[string]string{FaceAll: "lava.png"}},
	IronOre:     {Name: "iron_ore", DisplayName: "Iron Ore", Hardness: 3.0, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "iron_ore.png"}},
	CoalOre:     {Name: "coal_ore", DisplayName: "Coal Ore", Hardness: 3.0, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "coal_ore.png"}},
	DiamondOre:  {Name: "diamond_ore", DisplayName: "Diamond Ore", Hardness: 3.0, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "diamond_ore.png"}},
	GoldOre:     {Name: "gold_ore", DisplayName: "Gold Ore", Hardness: 3.0, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "gold_ore.png"}},
	Bedrock:     {Name: "bedrock", DisplayName: "Bedrock", Hardness: -1, Breakable: false, SoundGroup: "stone", Textures: map[string]string{FaceAll: "bedrock.png"}},
	Obsidian:    {Name: "obsidian", DisplayName: "Obsidian", Hardness: 50, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "obsidian.png"}},
	Glass:       {Name: "glass", DisplayName: "Glass", Hardness: 0.3, Transparent: true, Breakable: true, SoundGroup: "glass", Textures: map[string]string{FaceAll: "glass.png"}},
	Leaves:      {Name: "leaves", DisplayName: "Leaves", Hardness: 0.2, Transparent: true, Flammable: true, Breakable: true, SoundGroup: "grass", Textures: map[string]string{FaceAll: "leaves.png"}},
	Planks:      {Name: "planks", DisplayName: "Wood Planks", Hardness: 2.0, Flammable: true, Breakable: true, SoundGroup: "wood", Textures: map[string]string{FaceAll: "planks.png"}},
	Brick:       {Name: "brick", DisplayName: "Bricks", Hardness: 2.0, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "brick.png"}},
	Snow:        {Name: "snow", DisplayName: "Snow", Hardness: 0.1, Breakable: true, SoundGroup: "snow", Textures: map[string]string{FaceAll: "snow.png"}},
	Ice:         {Name: "ice", DisplayName: "Ice", Hardness: 0.5, Transparent: true, Breakable: true, SoundGroup: "glass", Textures: map[string]string{FaceAll: "ice.png"}},
	Cactus:      {Name: "cactus", DisplayName: "Cactus", Hardness: 0.4, Breakable: true, SoundGroup: "cloth", Textures: map[string]string{FaceTop: "cactus_top.png", FaceAll: "cactus_side.png"}},
	Clay:        {Name: "clay", DisplayName: "Clay", Hardness: 0.6, Breakable: true, SoundGroup: "gravel", Textures: map[string]string{FaceAll: "clay.png"}},
	Gravel:      {Name: "gravel", DisplayName: "Gravel", Hardness: 0.6, Breakable: true, SoundGroup: "gravel", Textures: map[string]string{FaceAll: "gravel.png"}},
	Netherrack:  {Name: "netherrack", DisplayName: "Netherrack", Hardness: 0.4, Breakable: true, SoundGroup: "stone", Textures: map[string]string{FaceAll: "netherrack.png"}},
	SoulSand:    {Name: "soul_sand", DisplayName: "Soul Sand", Hardness: 0.5, Breakable: true, SoundGroup: "sand", Textures: map[string]string{FaceAll: "soul_sand.png"}},
	Glowstone:   {Name: "glowstone", DisplayName: "Glowstone", Hardness: 0.3, Breakable: true, LightLevel: 15, SoundGroup: "glass", Textures: map[string]string{FaceAll: "glowstone.png"}},
}
