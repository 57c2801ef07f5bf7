package gamedata

// BlockType is the one-byte block id stored per voxel. Air (0) is the
// sentinel for "no content"; ids are append-only so serialized chunks stay
// readable across releases.
type BlockType byte

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
	Wood
	Cobblestone
	Sand
	Water
	Lava
	IronOre
	CoalOre
	DiamondOre
	GoldOre
	Bedrock
	Obsidian
	Glass
	Leaves
	Planks
	Brick
	Snow
	Ice
	Cactus
	Clay
	Gravel
	Netherrack
	SoulSand
	Glowstone

	// MaxBlockTypes bounds the id space; one byte per voxel on disk.
	MaxBlockTypes = 256
)

// Face names used as keys in per-face texture maps.
const (
	FaceTop    = "top"
	FaceBottom = "bottom"
	FaceNorth  = "north"
	FaceSouth  = "south"
	FaceEast   = "east"
	FaceWest   = "west"
	FaceAll    = "all"
)

// Block describes the display and physical properties of one block type.
type Block struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Hardness    float64 `yaml:"hardness"`
	Transparent bool    `yaml:"transparent"`
	Liquid      bool    `yaml:"liquid"`
	Flammable   bool    `yaml:"flammable"`
	Breakable   bool    `yaml:"breakable"`
	LightLevel  int     `yaml:"light_level"`
	SoundGroup  string  `yaml:"sound_group"`

	// Textures maps a face name to a texture file name. A single "all"
	// entry covers every face.
	Textures map[string]string `yaml:"textures,omitempty"`

	Drops []Drop `yaml:"drops,omitempty"`
}

// Drop is one item stack a block yields when broken.
type Drop struct {
	Block BlockType `yaml:"block"`
	Count int       `yaml:"count"`
}

// IsSolid reports whether the block occludes neighboring faces.
func (b *Block) IsSolid() bool {
	return !b.Transparent && !b.Liquid
}

// Texture returns the texture name for a face, falling back to the "all"
// entry and then to the empty string.
func (b *Block) Texture(face string) string {
	if t, ok := b.Textures[face]; ok {
		return t
	}
	return b.Textures[FaceAll]
}
