package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// priorityChunk is one pending generation request. Lower priority values are
// served first.
type priorityChunk struct {
	coord    ChunkCoord
	priority float64
}

// chunkPriority computes the distance-adjusted priority of a chunk relative to
// the observer. Base cost is Manhattan chunk distance; when the observer is
// moving, chunks ahead of the motion get a discount proportional to the cosine
// of the angle between chunk direction and velocity, up to halving the cost.
func chunkPriority(coord, observer ChunkCoord, velocity mgl64.Vec3) float64 {
	dx := coord.X - observer.X
	dz := coord.Z - observer.Z
	distance := float64(abs(dx) + abs(dz))
	if distance == 0 {
		return 0
	}

	speed := math.Hypot(velocity.X(), velocity.Z())
	if speed < 0.1 {
		return distance
	}

	dirLen := math.Hypot(float64(dx), float64(dz))
	alignment := (float64(dx)*velocity.X() + float64(dz)*velocity.Z()) / (dirLen * speed)
	if alignment > 0 {
		distance *= 1 - 0.5*alignment
	}
	return distance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// genQueue is a min-heap of pending generation requests, used with
// container/heap under the manager's lock.
type genQueue []priorityChunk

func (q genQueue) Len() int           { return len(q) }
func (q genQueue) Less(i, j int) bool { return q[i].priority < q[j].priority }
func (q genQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *genQueue) Push(x any)        { *q = append(*q, x.(priorityChunk)) }

func (q *genQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
