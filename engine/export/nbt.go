package export

import (
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

// SnapshotTag is the root compound of a partition snapshot.
type SnapshotTag struct {
	Seed       int64          `nbt:"seed"`
	ChunkSize  int32          `nbt:"chunk_size"`
	Partitions []PartitionTag `nbt:"partitions"`
}

// PartitionTag stores the blocks of one partition in dense index order, one byte per block.
type PartitionTag struct {
	X      int32  `nbt:"x"`
	Y      int32  `nbt:"y"`
	Z      int32  `nbt:"z"`
	Mode   string `nbt:"mode"`
	Blocks []byte `nbt:"blocks"`
}

func NewSnapshot(seed uint64, src PartitionSource) SnapshotTag {
	chunks := residentChunks(src)
	snap := SnapshotTag{
		Seed:       int64(seed),
		ChunkSize:  voxel.CHUNK_SIZE,
		Partitions: make([]PartitionTag, 0, len(chunks)),
	}
	for _, chunk := range chunks {
		blocks := make([]byte, voxel.CHUNK_SIZE_CUBED)
		for y := int32(0); y < voxel.CHUNK_SIZE; y++ {
			for z := int32(0); z < voxel.CHUNK_SIZE; z++ {
				for x := int32(0); x < voxel.CHUNK_SIZE; x++ {
					blocks[x+voxel.CHUNK_SIZE*(z+voxel.CHUNK_SIZE*y)] = byte(chunk.Block(x, y, z))
				}
			}
		}
		coord := chunk.Coord()
		snap.Partitions = append(snap.Partitions, PartitionTag{
			X: coord.X, Y: coord.Y, Z: coord.Z,
			Mode:   chunk.StorageMode().String(),
			Blocks: blocks,
		})
	}
	return snap
}

// EncodeSnapshot writes the gzip compressed NBT snapshot of the resident partitions.
func EncodeSnapshot(w io.Writer, seed uint64, src PartitionSource) (int, error) {
	snap := NewSnapshot(seed, src)
	data, err := nbt.Marshal(snap)
	if err != nil {
		return 0, errors.Wrap(err, "encoding snapshot")
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return 0, errors.Wrap(err, "compressing snapshot")
	}
	if err := zw.Close(); err != nil {
		return 0, errors.Wrap(err, "compressing snapshot")
	}
	return len(snap.Partitions), nil
}

func WriteSnapshot(path string, seed uint64, src PartitionSource) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating snapshot %s", path)
	}
	written, err := EncodeSnapshot(f, seed, src)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, "closing snapshot %s", path)
	}
	if err != nil {
		return err
	}
	util.LogExportInfo(fmt.Sprintf("[Export] Wrote %d partitions to %s", written, path))
	return nil
}
