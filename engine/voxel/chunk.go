package voxel

import (
	"fmt"
)

type RemeshStrategy int

const (
	// RemeshDirty only recomputes the face groups flagged in the dirty mask.
	RemeshDirty RemeshStrategy = iota
	// RemeshFull recomputes all six face groups.
	RemeshFull
)

func (s RemeshStrategy) String() string {
	if s == RemeshFull {
		return "full"
	}
	return "dirty"
}

// Chunk is a cube of CHUNK_SIZE^3 blocks. It never references the world that owns it,
// lookups across the chunk border go through a BlockSource handed to Remesh.
type Chunk struct {
	coord   Int3
	storage Storage
	onlyAir bool

	dirty         FaceMask
	boundaryEdits FaceMask

	faces      FaceLists
	meshBuffer *MeshBuffer
	meshed     bool
}

func NewChunk(coord Int3, mode StorageMode) *Chunk {
	return &Chunk{
		coord:      coord,
		storage:    NewStorage(mode),
		onlyAir:    true,
		dirty:      AllFaces,
		meshBuffer: NewMeshBuffer(),
	}
}

// NewChunkFromBlocks builds a freshly generated chunk. blocks is indexed like the dense storage
// and must hold CHUNK_SIZE_CUBED entries. The storage mode follows the measured fill ratio.
func NewChunkFromBlocks(coord Int3, blocks []BlockKind, sparseThreshold float64) *Chunk {
	if int32(len(blocks)) != CHUNK_SIZE_CUBED {
		panic(fmt.Sprintf("voxel: chunk %v built from %d blocks, want %d", coord, len(blocks), CHUNK_SIZE_CUBED))
	}
	nonAir := 0
	for _, b := range blocks {
		if !b.IsAir() {
			nonAir++
		}
	}
	c := NewChunk(coord, ChooseStorageMode(nonAir, len(blocks), sparseThreshold))
	if nonAir == 0 {
		return c
	}
	for y := int32(0); y < CHUNK_SIZE; y++ {
		for z := int32(0); z < CHUNK_SIZE; z++ {
			for x := int32(0); x < CHUNK_SIZE; x++ {
				if b := blocks[blockIndex(x, y, z)]; !b.IsAir() {
					c.storage.Set(x, y, z, b)
				}
			}
		}
	}
	c.onlyAir = false
	return c
}

func (c *Chunk) Coord() Int3 {
	return c.coord
}

// Origin is the world position of the local block (0,0,0).
func (c *Chunk) Origin() Int3 {
	return c.coord.ChunkOrigin()
}

func (c *Chunk) StorageMode() StorageMode {
	return c.storage.Mode()
}

func (c *Chunk) OnlyAir() bool {
	return c.onlyAir
}

func (c *Chunk) BlockCount() int {
	return c.storage.Count()
}

func (c *Chunk) Contains(x, y, z int32) bool {
	return InChunkBounds(x, y, z)
}

func (c *Chunk) Block(x, y, z int32) BlockKind {
	return c.storage.Get(x, y, z)
}

// SetBlock edits one block. Any edit can change every face group, so all faces become dirty;
// edits on the outer layer are also remembered so the neighbours sharing that layer can be remeshed.
func (c *Chunk) SetBlock(x, y, z int32, kind BlockKind) {
	if c.storage.Get(x, y, z) == kind {
		return
	}
	c.storage.Set(x, y, z, kind)
	if !kind.IsAir() {
		c.onlyAir = false
	}
	c.MarkAllFacesDirty()
	c.boundaryEdits |= boundaryLayers(x, y, z)
}

func boundaryLayers(x, y, z int32) FaceMask {
	var m FaceMask
	if x == 0 {
		m = m.With(XN)
	} else if x == CHUNK_SIZE-1 {
		m = m.With(XP)
	}
	if y == 0 {
		m = m.With(YN)
	} else if y == CHUNK_SIZE-1 {
		m = m.With(YP)
	}
	if z == 0 {
		m = m.With(ZN)
	} else if z == CHUNK_SIZE-1 {
		m = m.With(ZP)
	}
	return m
}

func (c *Chunk) MarkFaceDirty(side FaceType) {
	c.dirty = c.dirty.With(side)
}

func (c *Chunk) MarkAllFacesDirty() {
	c.dirty = AllFaces
}

func (c *Chunk) DirtyFaces() FaceMask {
	return c.dirty
}

func (c *Chunk) IsDirty() bool {
	return c.dirty != 0
}

// TakeBoundaryEdits returns the outer layers edited since the last call and forgets them.
func (c *Chunk) TakeBoundaryEdits() FaceMask {
	edits := c.boundaryEdits
	c.boundaryEdits = 0
	return edits
}

func (c *Chunk) Meshed() bool {
	return c.meshed
}

func (c *Chunk) VisibleFaces(side FaceType) []Int3 {
	mustBeValidFace(side)
	return c.faces[side]
}

func (c *Chunk) Faces() FaceLists {
	return c.faces
}

func (c *Chunk) Mesh() *MeshBuffer {
	return c.meshBuffer
}

// Remesh recomputes the visible faces and rebuilds the mesh buffer. The first pass of a chunk
// is always a full one.
func (c *Chunk) Remesh(src BlockSource, strategy RemeshStrategy) *MeshBuffer {
	faces := c.dirty
	if strategy == RemeshFull || !c.meshed {
		faces = AllFaces
	}
	if c.onlyAir {
		c.faces = FaceLists{}
	} else if faces != 0 {
		lists := BuildVisibility(c, src, faces)
		for _, side := range faces.Faces() {
			c.faces[side] = lists[side]
		}
	}
	c.dirty = 0
	c.meshed = true
	c.meshBuffer = BuildMesh(c)
	return c.meshBuffer
}

func (c *Chunk) String() string {
	return fmt.Sprintf("chunk%v[%s, blocks=%d, dirty=%06b]", c.coord, c.storage.Mode(), c.storage.Count(), uint8(c.dirty))
}
