package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Int3 struct {
	X, Y, Z int32
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) Sub(other Int3) Int3 {
	return Int3{i.X - other.X, i.Y - other.Y, i.Z - other.Z}
}

func (i Int3) Mul(factor int32) Int3 {
	i.X *= factor
	i.Y *= factor
	i.Z *= factor
	return i
}

func (i Int3) ToVec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(i.X), float32(i.Y), float32(i.Z)}
}

func (i Int3) ToString() string {
	return fmt.Sprintf("%d,%d,%d", i.X, i.Y, i.Z)
}

func (i Int3) String() string {
	return "(" + i.ToString() + ")"
}

// ChunkOrigin is the world position of the (0,0,0) block of the chunk at this chunk coordinate.
func (i Int3) ChunkOrigin() Int3 {
	return i.Mul(CHUNK_SIZE)
}

func ToGridInt3(pos mgl32.Vec3) Int3 {
	return Int3{int32(math.Floor(float64(pos.X()))), int32(math.Floor(float64(pos.Y()))), int32(math.Floor(float64(pos.Z())))}
}

// ChunkCoordOf returns the chunk coordinate containing a continuous world position.
func ChunkCoordOf(pos mgl32.Vec3) Int3 {
	chunk, _ := SplitWorld(ToGridInt3(pos))
	return chunk
}
