package export

import (
	"golang.org/x/exp/slices"

	"github.com/memmaker/voxelstream/engine/voxel"
)

// PartitionSource is the read side of a world that exports walk over.
type PartitionSource interface {
	ResidentCoords() []voxel.Int3
	Partition(coord voxel.Int3) *voxel.Chunk
}

// residentChunks returns the resident partitions ordered by coordinate.
func residentChunks(src PartitionSource) []*voxel.Chunk {
	coords := src.ResidentCoords()
	slices.SortFunc(coords, compareCoords)
	chunks := make([]*voxel.Chunk, 0, len(coords))
	for _, coord := range coords {
		if c := src.Partition(coord); c != nil {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func compareCoords(a, b voxel.Int3) int {
	switch {
	case a.X != b.X:
		return int(a.X) - int(b.X)
	case a.Y != b.Y:
		return int(a.Y) - int(b.Y)
	}
	return int(a.Z) - int(b.Z)
}
