package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelstream/engine/voxel"
)

func TestRaycastDownHitsSurface(t *testing.T) {
	w := New(testConfig(2))
	defer w.Close()

	h := w.generator.HeightAt(3, 3)
	coord := voxel.Int3{X: 0, Y: voxel.FloorDiv(h, voxel.CHUNK_SIZE), Z: 0}
	if w.RequestPartition(coord) == nil {
		t.Fatalf("surface partition %v missing", coord)
	}
	top := coord.ChunkOrigin().Y + voxel.CHUNK_SIZE - 1
	if h == top {
		t.Skip("surface sits on the partition top, the ray would start inside")
	}
	start := mgl32.Vec3{3.5, float32(top) + 0.5, 3.5}
	hit := w.Raycast(start, start.Sub(mgl32.Vec3{0, 40, 0}))
	if !hit.Hit {
		t.Fatal("expected to hit the surface")
	}
	want := voxel.Int3{X: 3, Y: h, Z: 3}
	if hit.Block != want || hit.Face != voxel.YP || hit.StartedInside {
		t.Fatalf("unexpected hit %+v, want block %v through the top face", hit, want)
	}
	if hit.Previous != want.Add(voxel.Int3{Y: 1}) {
		t.Fatalf("unexpected previous cell %v", hit.Previous)
	}
	if w.BlockAt(hit.Block) != voxel.Grass {
		t.Fatalf("surface block should be grass, got %v", w.BlockAt(hit.Block))
	}
}

func TestCastRayAlongX(t *testing.T) {
	wall := voxel.Int3{X: 5}
	solid := func(p voxel.Int3) bool { return p == wall }
	hit := castRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{10.5, 0.5, 0.5}, solid)
	if !hit.Hit || hit.Block != wall || hit.Face != voxel.XN {
		t.Fatalf("unexpected hit %+v", hit)
	}
	if hit.Distance != 4.5 {
		t.Fatalf("expected distance 4.5, got %v", hit.Distance)
	}

	miss := castRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{3.5, 0.5, 0.5}, solid)
	if miss.Hit {
		t.Fatalf("ray ending before the wall should miss, got %+v", miss)
	}

	back := castRay(mgl32.Vec3{9.5, 0.5, 0.5}, mgl32.Vec3{0.5, 0.5, 0.5}, solid)
	if !back.Hit || back.Face != voxel.XP {
		t.Fatalf("reverse ray should enter through +X, got %+v", back)
	}
}
