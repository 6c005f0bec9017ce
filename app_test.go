package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelstream/engine/config"
	"github.com/memmaker/voxelstream/engine/voxel"
	"github.com/memmaker/voxelstream/engine/world"
)

func TestMeshCounter(t *testing.T) {
	m := newMeshCounter()
	mesh := voxel.NewMeshBuffer()
	mesh.AppendFace(voxel.Int3{}, voxel.YP, voxel.Grass)
	m.UploadMesh(voxel.Int3{}, mesh)
	m.UploadMesh(voxel.Int3{}, mesh)
	m.UploadMesh(voxel.Int3{X: 1}, mesh)
	m.ReleaseMesh(voxel.Int3{X: 1})
	if got := m.String(); got != "1 live meshes, 2 triangles, 3 uploads, 1 releases" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSquareTourReturnsHome(t *testing.T) {
	start := mgl32.Vec3{8, 40, 8}
	tour := squareTour(start, 2)
	if len(tour) != 4 || tour[3] != start {
		t.Fatalf("tour should end at the start, got %v", tour)
	}
	if tour[0] != (mgl32.Vec3{40, 40, 8}) {
		t.Fatalf("unexpected first waypoint %v", tour[0])
	}
}

func TestRunWritesExports(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Streaming.RetentionRadius = 1
	cfg.Export.GLTF = filepath.Join(dir, "world.glb")
	cfg.Export.NBT = filepath.Join(dir, "world.nbt.gz")
	cfg.Export.Preview = filepath.Join(dir, "preview.png")

	if err := run(cfg, 3000, 0.1, 1, 0.5, 0); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, path := range []string{cfg.Export.GLTF, cfg.Export.NBT, cfg.Export.Preview} {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("export %s missing: %v", path, err)
		}
	}
}

func TestWriteExportsContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Streaming.RetentionRadius = 1
	cfg.Export.GLTF = filepath.Join(dir, "missing", "world.glb")
	cfg.Export.Preview = filepath.Join(dir, "preview.png")

	w := world.New(cfg)
	defer w.Close()
	if err := writeExports(cfg, w); err == nil {
		t.Fatalf("expected the glTF export to fail")
	}
	if _, err := os.Stat(cfg.Export.Preview); err != nil {
		t.Fatalf("preview should still be written: %v", err)
	}
}
