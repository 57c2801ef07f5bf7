package gen

import (
	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/world"
)

// applySurface places the biome-specific surface blocks on top of the stone
// column.
func applySurface(c *world.Chunk, x, z, height int, b biome) {
	switch b {
	case biomeDesert:
		// Deep sand.
		for y := height; y > height-5 && y > 3; y-- {
			c.SetBlock(x, y, z, gamedata.Sand)
		}

	case biomeOcean:
		// Gravel on the ocean floor, dirt below.
		for y := height; y > height-3 && y > 3; y-- {
			c.SetBlock(x, y, z, gamedata.Gravel)
		}
		for y := height - 3; y > height-5 && y > 3; y-- {
			c.SetBlock(x, y, z, gamedata.Dirt)
		}

	case biomeBeach:
		for y := height; y > height-4 && y > 3; y-- {
			c.SetBlock(x, y, z, gamedata.Sand)
		}

	case biomeMountains:
		// Bare stone peaks above the tree line, normal cap below.
		if height > 100 {
			for y := height; y > height-4 && y > 3; y-- {
				c.SetBlock(x, y, z, gamedata.Stone)
			}
		} else {
			applyDefaultSurface(c, x, z, height)
		}

	case biomeSnowyTaiga, biomeTundra:
		applyDefaultSurface(c, x, z, height)
		// Snow cap on exposed ground.
		if height > seaLevel && height < 255 {
			c.SetBlock(x, height+1, z, gamedata.Snow)
		}

	default:
		applyDefaultSurface(c, x, z, height)
	}
}

// applyDefaultSurface places grass on top with dirt below.
func applyDefaultSurface(c *world.Chunk, x, z, height int) {
	if height <= 3 {
		return
	}
	if height > seaLevel {
		c.SetBlock(x, height, z, gamedata.Grass)
	} else {
		// Underwater: dirt instead of grass.
		c.SetBlock(x, height, z, gamedata.Dirt)
	}
	for y := height - 1; y > height-4 && y > 3; y-- {
		c.SetBlock(x, y, z, gamedata.Dirt)
	}
}
