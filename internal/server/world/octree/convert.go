package octree

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/colorBanded/rayCave/internal/gamedata"
	"github.com/colorBanded/rayCave/internal/server/world"
)

// chunkTreeDepth subdivides a 256-edge cube down to unit cells.
const chunkTreeDepth = 8

// FromChunk builds an octree over a chunk's volume holding every non-air
// block. The cube is sized to the chunk height, so the chunk's 16x16
// footprint occupies one corner; the rest stays air.
func FromChunk(c *world.Chunk) *Octree {
	ox, oz := c.Coord().WorldOrigin()
	o := New(mgl64.Vec3{ox, 0, oz}, world.ChunkHeight, chunkTreeDepth)
	for y := 0; y < world.ChunkHeight; y++ {
		for z := 0; z < world.ChunkSize; z++ {
			for x := 0; x < world.ChunkSize; x++ {
				t := c.GetBlock(x, y, z)
				if t == gamedata.Air {
					continue
				}
				o.SetBlock(mgl64.Vec3{ox + float64(x), float64(y), oz + float64(z)}, t)
			}
		}
	}
	o.Optimize()
	return o
}

// ToChunk writes the octree's contents into a chunk at the same coordinate.
// Cells outside the chunk footprint are ignored; in-range non-air blocks
// round-trip losslessly.
func (o *Octree) ToChunk(c *world.Chunk) {
	ox, oz := c.Coord().WorldOrigin()
	for y := 0; y < world.ChunkHeight; y++ {
		for z := 0; z < world.ChunkSize; z++ {
			for x := 0; x < world.ChunkSize; x++ {
				pos := mgl64.Vec3{ox + float64(x), float64(y), oz + float64(z)}
				c.SetBlock(x, y, z, o.GetBlock(pos))
			}
		}
	}
}
