package export

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/memmaker/voxelstream/engine/util"
)

// BuildDocument puts the current mesh of every resident, meshed partition into one glTF scene,
// one node per partition. Vertices are already in world space.
func BuildDocument(src PartitionSource) (*gltf.Document, int) {
	doc := gltf.NewDocument()
	doc.Materials = append(doc.Materials, &gltf.Material{Name: "terrain"})
	written := 0
	for _, chunk := range residentChunks(src) {
		mesh := chunk.Mesh()
		if !chunk.Meshed() || mesh.IsEmpty() {
			continue
		}
		positions := make([][3]float32, 0, mesh.VertexCount())
		uvs := make([][2]float32, 0, mesh.VertexCount())
		for _, v := range mesh.Vertices() {
			positions = append(positions, [3]float32{v.Pos.X(), v.Pos.Y(), v.Pos.Z()})
			uvs = append(uvs, [2]float32{v.UV.X(), v.UV.Y()})
		}
		name := fmt.Sprintf("partition_%d_%d_%d", chunk.Coord().X, chunk.Coord().Y, chunk.Coord().Z)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: name,
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(modeler.WriteIndices(doc, mesh.Indices())),
				Attributes: map[string]uint32{
					"POSITION":   modeler.WritePosition(doc, positions),
					"TEXCOORD_0": modeler.WriteTextureCoord(doc, uvs),
				},
				Material: gltf.Index(0),
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
		written++
	}
	return doc, written
}

// WriteGLB saves the meshes of the resident partitions as a binary glTF file.
func WriteGLB(path string, src PartitionSource) error {
	doc, written := BuildDocument(src)
	if err := gltf.SaveBinary(doc, path); err != nil {
		return errors.Wrapf(err, "writing glb %s", path)
	}
	util.LogExportInfo(fmt.Sprintf("[Export] Wrote %d partition meshes to %s", written, path))
	return nil
}

// TriangleTotal sums the triangles of all meshed partitions.
func TriangleTotal(src PartitionSource) int {
	total := 0
	for _, chunk := range residentChunks(src) {
		if chunk.Meshed() {
			total += chunk.Mesh().TriangleCount()
		}
	}
	return total
}
