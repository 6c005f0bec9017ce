package terrain

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

type Params struct {
	Base     Layer
	Mountain Layer
	Detail   Layer
	// DirtDepth is the number of dirt layers between the grass and the stone.
	DirtDepth       int32
	SparseThreshold float64
}

func DefaultParams() Params {
	return Params{
		Base:            Layer{Frequency: 0.002, Octaves: 4, Persistence: 0.5, Amplitude: 50},
		Mountain:        Layer{Frequency: 0.0004, Octaves: 5, Persistence: 0.4, Amplitude: 300},
		Detail:          Layer{Frequency: 0.005, Octaves: 6, Persistence: 0.45, Amplitude: 20},
		DirtDepth:       4,
		SparseThreshold: voxel.DefaultSparseThreshold,
	}
}

// Generator is a pure function of its seed: the same seed and coordinates always produce the
// same heights and blocks. It is safe for concurrent use.
type Generator struct {
	seed   uint64
	params Params
	noise  opensimplex.Noise
}

func NewGenerator(seed uint64, params Params) *Generator {
	util.LogTerrainInfo(fmt.Sprintf("[Terrain] Generator seeded with %d, dirt depth %d", seed, params.DirtDepth))
	return &Generator{
		seed:   seed,
		params: params,
		noise:  opensimplex.NewNormalized(int64(seed)),
	}
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

func (g *Generator) Params() Params {
	return g.params
}

// HeightAt is the y of the grass block of the column at the given world position.
func (g *Generator) HeightAt(worldX, worldZ int32) int32 {
	x, z := float64(worldX), float64(worldZ)
	base := fractal2D(g.noise, x, z, g.params.Base)
	mountain := fractal2D(g.noise, x, z, g.params.Mountain)
	detail := fractal2D(g.noise, x, z, g.params.Detail)

	elevation := base*g.params.Base.Amplitude +
		mountain*mountain*g.params.Mountain.Amplitude +
		detail*g.params.Detail.Amplitude
	return int32(math.Floor(elevation))
}

// Heights evaluates every column of a chunk column once.
func (g *Generator) Heights(chunkX, chunkZ int32) *HeightMap {
	hm := &HeightMap{ChunkX: chunkX, ChunkZ: chunkZ}
	originX := chunkX * voxel.CHUNK_SIZE
	originZ := chunkZ * voxel.CHUNK_SIZE
	for z := int32(0); z < voxel.CHUNK_SIZE; z++ {
		for x := int32(0); x < voxel.CHUNK_SIZE; x++ {
			hm.set(x, z, g.HeightAt(originX+x, originZ+z))
		}
	}
	return hm
}

// Classify picks the block at worldY for a column whose surface is at height.
func (g *Generator) Classify(worldY, height int32) voxel.BlockKind {
	switch {
	case worldY > height:
		return voxel.Air
	case worldY == height:
		return voxel.Grass
	case worldY >= height-g.params.DirtDepth:
		return voxel.Dirt
	default:
		return voxel.Stone
	}
}

func (g *Generator) IsEmpty(coord voxel.Int3) bool {
	return g.IsEmptyWith(coord, g.Heights(coord.X, coord.Z))
}

// IsEmptyWith reports whether the chunk lies entirely above the surface of every column.
func (g *Generator) IsEmptyWith(coord voxel.Int3, hm *HeightMap) bool {
	g.mustMatch(coord, hm)
	return coord.ChunkOrigin().Y > hm.Max()
}

func (g *Generator) Populate(coord voxel.Int3) *voxel.Chunk {
	return g.PopulateWith(coord, g.Heights(coord.X, coord.Z))
}

// PopulateWith fills a chunk from precomputed column heights. It returns nil when every block
// would be air.
func (g *Generator) PopulateWith(coord voxel.Int3, hm *HeightMap) *voxel.Chunk {
	g.mustMatch(coord, hm)
	if g.IsEmptyWith(coord, hm) {
		return nil
	}
	originY := coord.ChunkOrigin().Y
	blocks := make([]voxel.BlockKind, voxel.CHUNK_SIZE_CUBED)
	for z := int32(0); z < voxel.CHUNK_SIZE; z++ {
		for x := int32(0); x < voxel.CHUNK_SIZE; x++ {
			height := hm.At(x, z)
			for y := int32(0); y < voxel.CHUNK_SIZE; y++ {
				blocks[x+voxel.CHUNK_SIZE*(z+voxel.CHUNK_SIZE*y)] = g.Classify(originY+y, height)
			}
		}
	}
	chunk := voxel.NewChunkFromBlocks(coord, blocks, g.params.SparseThreshold)
	util.LogTerrainDebug(fmt.Sprintf("[Terrain] Populated %v with %d blocks (%s)", coord, chunk.BlockCount(), chunk.StorageMode()))
	return chunk
}

func (g *Generator) mustMatch(coord voxel.Int3, hm *HeightMap) {
	if hm == nil || hm.ChunkX != coord.X || hm.ChunkZ != coord.Z {
		panic(fmt.Sprintf("terrain: height map does not belong to chunk %v", coord))
	}
}
