package gen

import (
	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/world"
)

// DefaultGenerator produces terrain with biomes, caves, ores, and trees. It
// is a pure function of (seed, chunk coordinate).
type DefaultGenerator struct {
	seed     int64
	terrain  *NoiseGenerator
	detail   *NoiseGenerator
	biomeGen *BiomeGenerator
	caveGen  *CaveGenerator
	oreGen   *OreGenerator
	treeGen  *TreeGenerator
}

// NewDefaultGenerator creates a DefaultGenerator from a seed.
func NewDefaultGenerator(seed int64) *DefaultGenerator {
	return &DefaultGenerator{
		seed:     seed,
		terrain:  NewNoiseGenerator(seed),
		detail:   NewNoiseGenerator(seed + 1),
		biomeGen: NewBiomeGenerator(seed),
		caveGen:  NewCaveGenerator(seed),
		oreGen:   NewOreGenerator(seed),
		treeGen:  NewTreeGenerator(seed),
	}
}

// Seed returns the world seed the generator was built with.
func (g *DefaultGenerator) Seed() int64 { return g.seed }

// Generate fills the chunk with terrain.
func (g *DefaultGenerator) Generate(c *world.Chunk) {
	coord := c.Coord()

	// Pass 1: heightmap, biomes, column fill.
	var heights [16][16]int
	var biomes [16][16]biome
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			bx := coord.X*16 + x
			bz := coord.Z*16 + z

			b := g.biomeGen.BiomeAt(bx, bz)
			biomes[x][z] = b

			height := g.terrainHeight(bx, bz, b)
			heights[x][z] = height

			g.fillColumn(c, x, z, height, b)
		}
	}

	// Pass 2: carve caves.
	g.caveGen.Carve(c, coord.X, coord.Z, &heights)

	// Pass 3: place ores.
	g.oreGen.Place(c, coord.X, coord.Z, &heights)

	// Pass 4: trees and vegetation.
	g.treeGen.Decorate(c, coord.X, coord.Z, &heights, &biomes)
}

// HeightAt returns the terrain height at a world block coordinate.
func (g *DefaultGenerator) HeightAt(blockX, blockZ int) int {
	b := g.biomeGen.BiomeAt(blockX, blockZ)
	return g.terrainHeight(blockX, blockZ, b)
}

// terrainHeight computes the terrain height at a world block coordinate.
// Different biomes scale noise amplitude differently.
func (g *DefaultGenerator) terrainHeight(bx, bz int, b biome) int {
	// Base terrain noise.
	nx := float64(bx) / 128.0
	nz := float64(bz) / 128.0
	base := g.terrain.OctaveNoise2D(nx, nz, 6, 0.5)

	// Detail noise for small-scale variation.
	dx := float64(bx) / 32.0
	dz := float64(bz) / 32.0
	detail := g.detail.OctaveNoise2D(dx, dz, 3, 0.5)

	amplitude, baseHeight := biomeTerrainParams(b)

	height := baseHeight + base*amplitude + detail*4.0
	h := int(height)
	if h < 1 {
		h = 1
	}
	if h > 250 {
		h = 250
	}
	return h
}

// biomeTerrainParams returns (amplitude, baseHeight) for terrain noise scaling.
func biomeTerrainParams(b biome) (amplitude, baseHeight float64) {
	switch b {
	case biomeOcean:
		return 8.0, 40.0
	case biomePlains, biomeSavanna:
		return 12.0, float64(seaLevel)
	case biomeForest, biomeDarkForest:
		return 16.0, float64(seaLevel) + 2
	case biomeTaiga, biomeSnowyTaiga:
		return 18.0, float64(seaLevel) + 4
	case biomeDesert:
		return 10.0, float64(seaLevel) + 2
	case biomeJungle:
		return 18.0, float64(seaLevel) + 4
	case biomeMountains:
		return 40.0, float64(seaLevel) + 10
	case biomeBeach:
		return 3.0, float64(seaLevel)
	case biomeTundra:
		return 10.0, float64(seaLevel)
	default:
		return 14.0, float64(seaLevel)
	}
}

// fillColumn fills a single block column with terrain blocks.
func (g *DefaultGenerator) fillColumn(c *world.Chunk, x, z, height int, b biome) {
	// Bedrock layers: y=0 always, y=1..3 randomized.
	c.SetBlock(x, 0, z, gamedata.Bedrock)
	for y := 1; y <= 3; y++ {
		bx := x + y*7 // cheap variation
		if g.terrain.Noise2D(float64(bx)*0.5, float64(z)*0.5) > 0.0 {
			c.SetBlock(x, y, z, gamedata.Bedrock)
		} else {
			c.SetBlock(x, y, z, gamedata.Stone)
		}
	}

	// Stone fill from y=4 up to the surface layers.
	surfaceDepth := surfaceLayerDepth(b)
	stoneTop := height - surfaceDepth
	if stoneTop < 4 {
		stoneTop = 4
	}
	for y := 4; y <= stoneTop && y <= height; y++ {
		c.SetBlock(x, y, z, gamedata.Stone)
	}

	// Surface layers.
	applySurface(c, x, z, height, b)

	// Water fill where terrain sits below sea level.
	if height < seaLevel {
		for y := height + 1; y <= seaLevel; y++ {
			c.SetBlock(x, y, z, gamedata.Water)
		}
	}
}

// surfaceLayerDepth returns how many blocks of surface material go below the
// top block.
func surfaceLayerDepth(b biome) int {
	switch b {
	case biomeDesert:
		return 5 // deep sand
	default:
		return 4
	}
}
