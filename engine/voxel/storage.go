package voxel

import "fmt"

type StorageMode uint8

const (
	Dense StorageMode = iota
	Sparse
)

func (m StorageMode) String() string {
	if m == Sparse {
		return "sparse"
	}
	return "dense"
}

// Storage holds the block kinds of one chunk. Coordinates are local and must be inside the chunk.
type Storage interface {
	Get(x, y, z int32) BlockKind
	Set(x, y, z int32, kind BlockKind)
	Mode() StorageMode
	// Count is the number of non-air blocks.
	Count() int
}

func NewStorage(mode StorageMode) Storage {
	if mode == Sparse {
		return &sparseStorage{blocks: make(map[uint16]BlockKind)}
	}
	return &denseStorage{blocks: make([]BlockKind, CHUNK_SIZE_CUBED)}
}

// ChooseStorageMode picks sparse storage when less than threshold of the blocks are occupied.
func ChooseStorageMode(nonAir, total int, threshold float64) StorageMode {
	if total <= 0 {
		return Sparse
	}
	if float64(nonAir)/float64(total) < threshold {
		return Sparse
	}
	return Dense
}

func blockIndex(x, y, z int32) int32 {
	return x + CHUNK_SIZE*(z+CHUNK_SIZE*y)
}

func mustBeLocal(x, y, z int32) {
	if !InChunkBounds(x, y, z) {
		panic(fmt.Sprintf("voxel: local coordinate %d,%d,%d outside chunk extent %d", x, y, z, CHUNK_SIZE))
	}
}

type denseStorage struct {
	blocks []BlockKind
	count  int
}

func (d *denseStorage) Get(x, y, z int32) BlockKind {
	mustBeLocal(x, y, z)
	return d.blocks[blockIndex(x, y, z)]
}

func (d *denseStorage) Set(x, y, z int32, kind BlockKind) {
	mustBeLocal(x, y, z)
	i := blockIndex(x, y, z)
	old := d.blocks[i]
	if old == kind {
		return
	}
	if old.IsAir() {
		d.count++
	} else if kind.IsAir() {
		d.count--
	}
	d.blocks[i] = kind
}

func (d *denseStorage) Mode() StorageMode { return Dense }

func (d *denseStorage) Count() int { return d.count }

// sparseStorage keys packed local positions; a missing key is air.
type sparseStorage struct {
	blocks map[uint16]BlockKind
}

func packLocal(x, y, z int32) uint16 {
	return uint16(blockIndex(x, y, z))
}

func (s *sparseStorage) Get(x, y, z int32) BlockKind {
	mustBeLocal(x, y, z)
	if kind, ok := s.blocks[packLocal(x, y, z)]; ok {
		return kind
	}
	return Air
}

func (s *sparseStorage) Set(x, y, z int32, kind BlockKind) {
	mustBeLocal(x, y, z)
	key := packLocal(x, y, z)
	if kind.IsAir() {
		delete(s.blocks, key)
		return
	}
	s.blocks[key] = kind
}

func (s *sparseStorage) Mode() StorageMode { return Sparse }

func (s *sparseStorage) Count() int { return len(s.blocks) }
