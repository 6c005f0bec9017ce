package terrain

import (
	"math"

	"github.com/memmaker/voxelstream/engine/voxel"
)

// HeightMap caches the surface height of every column of one chunk column.
type HeightMap struct {
	ChunkX, ChunkZ int32
	heights        [voxel.CHUNK_SIZE_SQUARED]int32
	min, max       int32
	filled         bool
}

func (h *HeightMap) set(x, z, height int32) {
	h.heights[x+z*voxel.CHUNK_SIZE] = height
	if !h.filled {
		h.min, h.max, h.filled = height, height, true
		return
	}
	if height < h.min {
		h.min = height
	}
	if height > h.max {
		h.max = height
	}
}

func (h *HeightMap) At(x, z int32) int32 {
	if x < 0 || x >= voxel.CHUNK_SIZE || z < 0 || z >= voxel.CHUNK_SIZE {
		panic("terrain: column outside height map")
	}
	return h.heights[x+z*voxel.CHUNK_SIZE]
}

func (h *HeightMap) Max() int32 {
	if !h.filled {
		return math.MinInt32
	}
	return h.max
}

func (h *HeightMap) Min() int32 {
	if !h.filled {
		return math.MaxInt32
	}
	return h.min
}
