// Package octree implements a sparse voxel octree over the same one-byte
// block ids as the dense chunk. Air is the implicit default; a node without
// materialized children is uniformly filled with its own block type.
package octree

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/colorBanded/rayCave/internal/gamedata"
)

// node is one cell of the tree. Children are exclusively owned; a nil child
// slot means "uniform, same block as this node" until a descent materializes
// it. A leaf has no children at all.
type node struct {
	children [8]*node
	center   mgl64.Vec3
	halfSize float64
	level    int
	block    gamedata.BlockType
	leaf     bool
}

func newNode(center mgl64.Vec3, halfSize float64, level int, block gamedata.BlockType) *node {
	return &node{center: center, halfSize: halfSize, level: level, block: block, leaf: true}
}

// childIndex packs the sign of (pos - center) per axis into a 3-bit index:
// bit 0 = x, bit 1 = y, bit 2 = z.
func (n *node) childIndex(pos mgl64.Vec3) int {
	i := 0
	if pos.X() >= n.center.X() {
		i |= 1
	}
	if pos.Y() >= n.center.Y() {
		i |= 2
	}
	if pos.Z() >= n.center.Z() {
		i |= 4
	}
	return i
}

// childCenter returns the center of the i-th octant.
func (n *node) childCenter(i int) mgl64.Vec3 {
	q := n.halfSize / 2
	offset := mgl64.Vec3{-q, -q, -q}
	if i&1 != 0 {
		offset[0] = q
	}
	if i&2 != 0 {
		offset[1] = q
	}
	if i&4 != 0 {
		offset[2] = q
	}
	return n.center.Add(offset)
}

// child returns the i-th child, materializing it lazily with this node's
// block type so reads-before-writes and writes to distant neighbors both see
// a consistent uniform value.
func (n *node) child(i int) *node {
	if n.children[i] == nil {
		n.children[i] = newNode(n.childCenter(i), n.halfSize/2, n.level+1, n.block)
	}
	return n.children[i]
}

// tryMerge collapses the node back to a leaf when every octant holds the same
// value. A nil child counts as the node's own block.
func (n *node) tryMerge() {
	if n.leaf {
		return
	}
	value := n.block
	haveValue := false
	for _, c := range n.children {
		switch {
		case c == nil:
			if haveValue && n.block != value {
				return
			}
			value, haveValue = n.block, true
		case c.leaf:
			if haveValue && c.block != value {
				return
			}
			value, haveValue = c.block, true
		default:
			return
		}
	}
	n.children = [8]*node{}
	n.block = value
	n.leaf = true
}

// Octree is a cubic sparse voxel volume rooted at origin with the given edge
// length. Positions outside the root cube read as air and ignore writes.
type Octree struct {
	root     *node
	origin   mgl64.Vec3
	size     float64
	maxDepth int
}

// New creates an empty (all-air) octree covering [origin, origin+size) on
// every axis, subdividing at most maxDepth times.
func New(origin mgl64.Vec3, size float64, maxDepth int) *Octree {
	if maxDepth < 1 {
		maxDepth = 1
	}
	half := size / 2
	center := origin.Add(mgl64.Vec3{half, half, half})
	return &Octree{
		root:     newNode(center, half, 0, gamedata.Air),
		origin:   origin,
		size:     size,
		maxDepth: maxDepth,
	}
}

func (o *Octree) contains(pos mgl64.Vec3) bool {
	return pos.X() >= o.origin.X() && pos.X() < o.origin.X()+o.size &&
		pos.Y() >= o.origin.Y() && pos.Y() < o.origin.Y()+o.size &&
		pos.Z() >= o.origin.Z() && pos.Z() < o.origin.Z()+o.size
}

// SetBlock writes a block at a world position. Out-of-root positions are
// silently ignored.
func (o *Octree) SetBlock(pos mgl64.Vec3, t gamedata.BlockType) {
	if !o.contains(pos) {
		return
	}
	o.set(o.root, pos, t)
}

func (o *Octree) set(n *node, pos mgl64.Vec3, t gamedata.BlockType) {
	if n.leaf {
		if n.block == t {
			return
		}
		if n.level >= o.maxDepth {
			// Deepest reachable node: mutate directly.
			n.block = t
			return
		}
		// Split: become internal; absent children inherit the old value.
		n.leaf = false
	}

	child := n.child(n.childIndex(pos))
	o.set(child, pos, t)
	n.tryMerge()
}

// GetBlock reads the block at a world position. Out-of-root positions read
// as air.
func (o *Octree) GetBlock(pos mgl64.Vec3) gamedata.BlockType {
	if !o.contains(pos) {
		return gamedata.Air
	}
	n := o.root
	for !n.leaf {
		c := n.children[n.childIndex(pos)]
		if c == nil {
			return n.block
		}
		n = c
	}
	return n.block
}

// Optimize merges uniform subtrees bottom-up across the whole tree. It is
// idempotent and never changes observable block values.
func (o *Octree) Optimize() {
	optimize(o.root)
}

func optimize(n *node) {
	if n.leaf {
		return
	}
	for _, c := range n.children {
		if c != nil {
			optimize(c)
		}
	}
	n.tryMerge()
}

// Clear resets the tree to all air.
func (o *Octree) Clear() {
	o.root = newNode(o.root.center, o.root.halfSize, 0, gamedata.Air)
}

// NodeCount returns the number of materialized nodes.
func (o *Octree) NodeCount() int {
	return countNodes(o.root)
}

func countNodes(n *node) int {
	count := 1
	for _, c := range n.children {
		if c != nil {
			count += countNodes(c)
		}
	}
	return count
}

// nodeBytes approximates the in-memory footprint of one node.
const nodeBytes = 8*8 + 3*8 + 8 + 8 + 2

// MemoryUsage approximates the tree's memory footprint in bytes.
func (o *Octree) MemoryUsage() int {
	return o.NodeCount() * nodeBytes
}

// FillRegion sets every unit cell in the axis-aligned box [min, max]
// (inclusive) to the given type. Unit-step iteration over the point API;
// correctness over speed.
func (o *Octree) FillRegion(min, max mgl64.Vec3, t gamedata.BlockType) {
	for x := min.X(); x <= max.X(); x++ {
		for y := min.Y(); y <= max.Y(); y++ {
			for z := min.Z(); z <= max.Z(); z++ {
				o.SetBlock(mgl64.Vec3{x, y, z}, t)
			}
		}
	}
}

// ClearRegion resets the box to air.
func (o *Octree) ClearRegion(min, max mgl64.Vec3) {
	o.FillRegion(min, max, gamedata.Air)
}

// IsEmpty reports whether every unit cell in the box is air.
func (o *Octree) IsEmpty(min, max mgl64.Vec3) bool {
	for x := min.X(); x <= max.X(); x++ {
		for y := min.Y(); y <= max.Y(); y++ {
			for z := min.Z(); z <= max.Z(); z++ {
				if o.GetBlock(mgl64.Vec3{x, y, z}) != gamedata.Air {
					return false
				}
			}
		}
	}
	return true
}

// Voxel is one non-air cell reported by GetNonEmptyBlocks.
type Voxel struct {
	Pos   mgl64.Vec3
	Block gamedata.BlockType
}

// GetNonEmptyBlocks enumerates every non-air unit cell in the tree's volume.
func (o *Octree) GetNonEmptyBlocks() []Voxel {
	var out []Voxel
	for x := o.origin.X(); x < o.origin.X()+o.size; x++ {
		for y := o.origin.Y(); y < o.origin.Y()+o.size; y++ {
			for z := o.origin.Z(); z < o.origin.Z()+o.size; z++ {
				pos := mgl64.Vec3{x, y, z}
				if t := o.GetBlock(pos); t != gamedata.Air {
					out = append(out, Voxel{Pos: pos, Block: t})
				}
			}
		}
	}
	return out
}
