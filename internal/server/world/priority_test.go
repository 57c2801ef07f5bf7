package world

import (
	"container/heap"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGenerationQueueOrdersByDistance(t *testing.T) {
	observer := ChunkCoord{0, 0}
	still := mgl64.Vec3{}

	// Enqueue at Manhattan distances 5, 1, 3.
	coords := []ChunkCoord{{5, 0}, {1, 0}, {3, 0}}
	q := &genQueue{}
	for _, c := range coords {
		heap.Push(q, priorityChunk{coord: c, priority: chunkPriority(c, observer, still)})
	}

	want := []ChunkCoord{{1, 0}, {3, 0}, {5, 0}}
	for i, w := range want {
		got := heap.Pop(q).(priorityChunk)
		if got.coord != w {
			t.Errorf("pop %d = %v, want %v", i, got.coord, w)
		}
	}
}

func TestChunkPriorityDirectionalDiscount(t *testing.T) {
	observer := ChunkCoord{0, 0}
	// Moving along +x.
	vel := mgl64.Vec3{5, 0, 0}

	ahead := chunkPriority(ChunkCoord{4, 0}, observer, vel)
	behind := chunkPriority(ChunkCoord{-4, 0}, observer, vel)
	if ahead >= behind {
		t.Errorf("chunk ahead of motion must be cheaper: ahead=%v behind=%v", ahead, behind)
	}
	// Full alignment halves the cost.
	if ahead != 2 {
		t.Errorf("fully aligned priority = %v, want 2", ahead)
	}
	// Discount never applies against the motion.
	if behind != 4 {
		t.Errorf("opposed priority = %v, want 4", behind)
	}
}

func TestChunkPriorityZeroDistance(t *testing.T) {
	if got := chunkPriority(ChunkCoord{2, 3}, ChunkCoord{2, 3}, mgl64.Vec3{1, 0, 0}); got != 0 {
		t.Errorf("priority at the observer's chunk = %v, want 0", got)
	}
}

func TestGetChunksInRadiusRings(t *testing.T) {
	center := ChunkCoord{10, -10}

	got := GetChunksInRadius(center, 0)
	if len(got) != 1 || got[0] != center {
		t.Fatalf("radius 0 = %v, want just the center", got)
	}

	got = GetChunksInRadius(center, 2)
	if len(got) != 25 {
		t.Fatalf("radius 2 produced %d coords, want 25", len(got))
	}
	if got[0] != center {
		t.Errorf("first coord = %v, want center %v", got[0], center)
	}

	// Chebyshev ring distance must be non-decreasing, and every coord unique.
	seen := make(map[ChunkCoord]bool)
	lastRing := 0
	for _, c := range got {
		ring := max(abs(c.X-center.X), abs(c.Z-center.Z))
		if ring < lastRing {
			t.Fatalf("coord %v at ring %d after ring %d", c, ring, lastRing)
		}
		if ring > 2 {
			t.Fatalf("coord %v outside radius", c)
		}
		if seen[c] {
			t.Fatalf("coord %v enumerated twice", c)
		}
		seen[c] = true
		lastRing = ring
	}
}
