package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/qmuntal/gltf"
	"golang.org/x/image/colornames"

	"github.com/memmaker/voxelstream/engine/voxel"
)

type chunkSet map[voxel.Int3]*voxel.Chunk

func (s chunkSet) ResidentCoords() []voxel.Int3 {
	coords := make([]voxel.Int3, 0, len(s))
	for c := range s {
		coords = append(coords, c)
	}
	return coords
}

func (s chunkSet) Partition(coord voxel.Int3) *voxel.Chunk {
	return s[coord]
}

func singleBlockChunk(coord voxel.Int3, meshed bool) *voxel.Chunk {
	blocks := make([]voxel.BlockKind, voxel.CHUNK_SIZE_CUBED)
	blocks[0] = voxel.Stone
	c := voxel.NewChunkFromBlocks(coord, blocks, voxel.DefaultSparseThreshold)
	if meshed {
		c.Remesh(nil, voxel.RemeshFull)
	}
	return c
}

func testSet() chunkSet {
	return chunkSet{
		{X: 0}: singleBlockChunk(voxel.Int3{X: 0}, true),
		{X: 1}: singleBlockChunk(voxel.Int3{X: 1}, false),
	}
}

func TestBuildDocumentSkipsUnmeshed(t *testing.T) {
	doc, written := BuildDocument(testSet())
	if written != 1 || len(doc.Meshes) != 1 || len(doc.Nodes) != 1 {
		t.Fatalf("expected one mesh, got written=%d meshes=%d nodes=%d", written, len(doc.Meshes), len(doc.Nodes))
	}
	prim := doc.Meshes[0].Primitives[0]
	if got := doc.Accessors[prim.Attributes["POSITION"]].Count; got != 24 {
		t.Fatalf("expected 24 vertices for one cube, got %d", got)
	}
	if got := doc.Accessors[*prim.Indices].Count; got != 36 {
		t.Fatalf("expected 36 indices for one cube, got %d", got)
	}
	if got := len(doc.Scenes[0].Nodes); got != 1 {
		t.Fatalf("expected one scene node, got %d", got)
	}
	if TriangleTotal(testSet()) != 12 {
		t.Fatalf("expected 12 triangles, got %d", TriangleTotal(testSet()))
	}
}

func TestWriteGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.glb")
	if err := WriteGLB(path, testSet()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reading back failed: %v", err)
	}
	if len(doc.Meshes) != 1 || doc.Meshes[0].Name != "partition_0_0_0" {
		t.Fatalf("unexpected meshes %v", doc.Meshes)
	}
}

func TestSnapshotEncoding(t *testing.T) {
	var buf bytes.Buffer
	n, err := EncodeSnapshot(&buf, 42, testSet())
	if err != nil || n != 2 {
		t.Fatalf("encode returned %d, %v", n, err)
	}
	zr, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("snapshot is not gzip: %v", err)
	}
	var snap SnapshotTag
	if _, err := nbt.NewDecoder(zr).Decode(&snap); err != nil {
		t.Fatalf("snapshot is not nbt: %v", err)
	}
	if snap.Seed != 42 || snap.ChunkSize != voxel.CHUNK_SIZE || len(snap.Partitions) != 2 {
		t.Fatalf("unexpected snapshot header %+v", snap)
	}
	first := snap.Partitions[0]
	if first.X != 0 || snap.Partitions[1].X != 1 {
		t.Fatalf("partitions not ordered by coordinate")
	}
	if first.Mode != voxel.Sparse.String() || len(first.Blocks) != int(voxel.CHUNK_SIZE_CUBED) {
		t.Fatalf("unexpected partition %s with %d blocks", first.Mode, len(first.Blocks))
	}
	if voxel.BlockKind(first.Blocks[0]) != voxel.Stone || voxel.BlockKind(first.Blocks[1]) != voxel.Air {
		t.Fatal("block payload does not match the partition")
	}
}

type flatTerrain int32

func (f flatTerrain) HeightAt(worldX, worldZ int32) int32 {
	return int32(f)
}

func TestRenderPreview(t *testing.T) {
	img := RenderPreview(flatTerrain(20), voxel.Int3{}, 1, 2)
	side := 3 * int(voxel.CHUNK_SIZE) * 2
	if img.Bounds().Dx() != side || img.Bounds().Dy() != side {
		t.Fatalf("unexpected preview size %v", img.Bounds())
	}
	if got := img.RGBAAt(side-1, side/2); got != colornames.Forestgreen {
		t.Fatalf("unexpected pixel %v", got)
	}
	if got := bandColor(1000); got != peakColor {
		t.Fatalf("peaks should be %v, got %v", peakColor, got)
	}
}

func TestWritePreviewBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "preview.png")
	if err := WritePreview(path, flatTerrain(0), voxel.Int3{}, 0, 1); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
