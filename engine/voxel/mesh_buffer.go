package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Pos mgl32.Vec3
	UV  mgl32.Vec2
}

// FloatsPerVertex is the interleaved layout handed to the renderer: x, y, z, u, v.
const FloatsPerVertex = 5

var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// MeshBuffer is the renderable payload of one chunk. Positions are in world space.
type MeshBuffer struct {
	vertices []Vertex
	indices  []uint32
}

func NewMeshBuffer() *MeshBuffer {
	return &MeshBuffer{}
}

// BuildMesh turns the visible face lists of a chunk into quads. Block kinds are read at build
// time, nothing per block is cached besides the face lists.
func BuildMesh(c *Chunk) *MeshBuffer {
	m := NewMeshBuffer()
	total := c.faces.Count()
	if total == 0 {
		return m
	}
	m.vertices = make([]Vertex, 0, total*4)
	m.indices = make([]uint32, 0, total*6)
	origin := c.Origin()
	for _, side := range AllFaceTypes {
		for _, local := range c.faces[side] {
			kind := c.storage.Get(local.X, local.Y, local.Z)
			m.AppendFace(origin.Add(local), side, kind)
		}
	}
	return m
}

// AppendFace adds the quad for one side of the block at the given world position.
func (m *MeshBuffer) AppendFace(blockPos Int3, side FaceType, kind BlockKind) {
	tile := FaceTile(kind, side)
	base := blockPos.ToVec3()
	var corners [4]mgl32.Vec3
	var uvs [4]mgl32.Vec2
	for i, corner := range faceTemplates[side] {
		corners[i] = base.Add(corner.pos)
		uvs[i] = TileUV(tile, corner.uv)
	}
	m.AppendQuad(corners, uvs)
}

func (m *MeshBuffer) AppendQuad(corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
	start := uint32(len(m.vertices))
	for i := range corners {
		m.vertices = append(m.vertices, Vertex{Pos: corners[i], UV: uvs[i]})
	}
	for _, idx := range quadIndices {
		m.indices = append(m.indices, start+idx)
	}
}

func (m *MeshBuffer) Vertices() []Vertex {
	return m.vertices
}

func (m *MeshBuffer) Indices() []uint32 {
	return m.indices
}

func (m *MeshBuffer) VertexCount() int {
	return len(m.vertices)
}

func (m *MeshBuffer) TriangleCount() int {
	return len(m.indices) / 3
}

func (m *MeshBuffer) IsEmpty() bool {
	return len(m.indices) == 0
}

// Interleaved flattens the vertices for upload.
func (m *MeshBuffer) Interleaved() []float32 {
	out := make([]float32, 0, len(m.vertices)*FloatsPerVertex)
	for _, v := range m.vertices {
		out = append(out, v.Pos.X(), v.Pos.Y(), v.Pos.Z(), v.UV.X(), v.UV.Y())
	}
	return out
}

func (m *MeshBuffer) MergeBuffer(other *MeshBuffer) {
	if other == nil {
		return
	}
	offset := uint32(len(m.vertices))
	m.vertices = append(m.vertices, other.vertices...)
	for _, idx := range other.indices {
		m.indices = append(m.indices, idx+offset)
	}
}
