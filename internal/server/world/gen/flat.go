package gen

import (
	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/world"
)

// FlatGenerator generates a superflat world: bedrock at y=0, stone y=1..2,
// dirt y=3, grass y=4. Useful for tests and quick worlds.
type FlatGenerator struct {
	seed int64
}

// NewFlatGenerator creates a FlatGenerator.
func NewFlatGenerator(seed int64) *FlatGenerator {
	return &FlatGenerator{seed: seed}
}

func (g *FlatGenerator) Generate(c *world.Chunk) {
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			c.SetBlock(x, 0, z, gamedata.Bedrock)
			c.SetBlock(x, 1, z, gamedata.Stone)
			c.SetBlock(x, 2, z, gamedata.Stone)
			c.SetBlock(x, 3, z, gamedata.Dirt)
			c.SetBlock(x, 4, z, gamedata.Grass)
		}
	}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return 4 // top solid block is the grass layer
}

func (g *FlatGenerator) Seed() int64 { return g.seed }
