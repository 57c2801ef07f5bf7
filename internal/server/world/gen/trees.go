package gen

import (
	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/world"
)

// TreeGenerator places trees and vegetation per biome.
type TreeGenerator struct {
	seed int64
}

// NewTreeGenerator creates a TreeGenerator from a seed.
func NewTreeGenerator(seed int64) *TreeGenerator {
	return &TreeGenerator{seed: seed}
}

// Decorate places trees and vegetation in the chunk.
func (tg *TreeGenerator) Decorate(c *world.Chunk, chunkX, chunkZ int, heights *[16][16]int, biomes *[16][16]biome) {
	rng := newChunkRNG(tg.seed, chunkX, chunkZ, 600)

	// Tree density follows the biome at the chunk center.
	centerBiome := biomes[8][8]

	treeCount := treesForBiome(centerBiome)
	for i := 0; i < treeCount; i++ {
		x := rng.nextN(16)
		z := rng.nextN(16)
		y := heights[x][z]

		if y <= seaLevel || y >= 250 {
			continue
		}

		// Trees only take root on grass.
		if c.GetBlock(x, y, z) != gamedata.Grass {
			continue
		}

		tg.placeTree(c, x, y+1, z, biomes[x][z], rng)
	}

	tg.placeVegetation(c, heights, biomes, rng)
}

func treesForBiome(b biome) int {
	switch b {
	case biomeDesert, biomeOcean, biomeBeach:
		return 0
	case biomePlains, biomeSavanna:
		return 1
	case biomeTundra, biomeSnowyTaiga:
		return 4
	case biomeTaiga:
		return 6
	case biomeForest:
		return 8
	case biomeDarkForest:
		return 10
	case biomeJungle:
		return 12
	default:
		return 2
	}
}

// placeTree places a single tree at the given position, clipped to the chunk.
func (tg *TreeGenerator) placeTree(c *world.Chunk, x, baseY, z int, b biome, rng *chunkRNG) {
	switch b {
	case biomeTaiga, biomeSnowyTaiga:
		tg.placeConifer(c, x, baseY, z, rng)
	default:
		tg.placeBroadleaf(c, x, baseY, z, rng)
	}
}

// placeBroadleaf places a standard tree: straight trunk plus a rounded leaf
// canopy.
func (tg *TreeGenerator) placeBroadleaf(c *world.Chunk, x, baseY, z int, rng *chunkRNG) {
	trunkHeight := 4 + rng.nextN(3) // 4-6

	if baseY+trunkHeight+2 > 255 {
		return
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		c.SetBlock(x, y, z, gamedata.Wood)
	}

	leafBase := baseY + trunkHeight - 2
	for dy := 0; dy < 4; dy++ {
		y := leafBase + dy
		radius := 2
		if dy >= 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if lx < 0 || lx >= 16 || lz < 0 || lz >= 16 {
					continue
				}
				// Don't replace trunk.
				if dx == 0 && dz == 0 && dy < trunkHeight-(leafBase-baseY) {
					continue
				}
				// Skip corners for a rounder shape on wider layers.
				if radius == 2 && abs(dx) == 2 && abs(dz) == 2 && rng.nextN(2) == 0 {
					continue
				}
				if c.GetBlock(lx, y, lz) == gamedata.Air {
					c.SetBlock(lx, y, lz, gamedata.Leaves)
				}
			}
		}
	}
}

// placeConifer places a taiga tree with a conical canopy.
func (tg *TreeGenerator) placeConifer(c *world.Chunk, x, baseY, z int, rng *chunkRNG) {
	trunkHeight := 6 + rng.nextN(4) // 6-9

	if baseY+trunkHeight+1 > 255 {
		return
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		c.SetBlock(x, y, z, gamedata.Wood)
	}

	// Conical leaves: widest at bottom, narrowing to top.
	for dy := 1; dy <= trunkHeight; dy++ {
		y := baseY + dy
		radius := (trunkHeight - dy) / 2
		if radius > 3 {
			radius = 3
		}
		if radius <= 0 && dy < trunkHeight {
			continue
		}
		// Only place every other row for the wider sections.
		if radius >= 2 && dy%2 == 0 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if lx < 0 || lx >= 16 || lz < 0 || lz >= 16 {
					continue
				}
				if dx == 0 && dz == 0 {
					continue
				}
				if c.GetBlock(lx, y, lz) == gamedata.Air {
					c.SetBlock(lx, y, lz, gamedata.Leaves)
				}
			}
		}
	}
	// Top leaf.
	if topY := baseY + trunkHeight; topY < 256 {
		c.SetBlock(x, topY, z, gamedata.Leaves)
	}
}

// placeVegetation scatters cacti in deserts.
func (tg *TreeGenerator) placeVegetation(c *world.Chunk, heights *[16][16]int, biomes *[16][16]biome, rng *chunkRNG) {
	for i := 0; i < 20; i++ {
		x := rng.nextN(16)
		z := rng.nextN(16)
		y := heights[x][z]
		if y <= seaLevel || y >= 255 {
			continue
		}

		if biomes[x][z] != biomeDesert {
			continue
		}
		if c.GetBlock(x, y, z) != gamedata.Sand {
			continue
		}
		if rng.nextN(8) == 0 {
			// Cactus, 1-3 blocks tall.
			h := 1 + rng.nextN(3)
			for dy := 1; dy <= h && y+dy < 256; dy++ {
				c.SetBlock(x, y+dy, z, gamedata.Cactus)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
