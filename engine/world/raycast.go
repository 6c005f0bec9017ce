package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelstream/engine/voxel"
)

// RayHit describes the first solid block along a ray.
type RayHit struct {
	Hit      bool
	Distance float64
	Block    voxel.Int3
	// Previous is the empty cell the ray left to reach Block.
	Previous voxel.Int3
	// Face is the side of Block the ray entered through. It is only valid when StartedInside is false.
	Face          voxel.FaceType
	StartedInside bool
	Position      mgl32.Vec3
}

// Raycast walks the grid cells between start and end and stops at the first resident solid block.
// Non-resident space counts as air.
func (w *World) Raycast(start, end mgl32.Vec3) RayHit {
	return castRay(start, end, func(pos voxel.Int3) bool {
		return !w.BlockAt(pos).IsAir()
	})
}

// castRay is a 3D DDA over unit cells.
func castRay(start, end mgl32.Vec3, solid func(pos voxel.Int3) bool) RayHit {
	ray := end.Sub(start)
	length := float64(ray.Len())
	cell := voxel.ToGridInt3(start)
	if length == 0 {
		if solid(cell) {
			return RayHit{Hit: true, Block: cell, Previous: cell, StartedInside: true, Position: start}
		}
		return RayHit{}
	}
	dir := ray.Normalize()

	var step [3]int32
	var tDelta, tMax [3]float64
	origin := [3]float64{float64(start.X()), float64(start.Y()), float64(start.Z())}
	cellAxis := [3]int32{cell.X, cell.Y, cell.Z}
	for axis := 0; axis < 3; axis++ {
		d := float64(dir[axis])
		switch {
		case d > 0:
			step[axis] = 1
			tDelta[axis] = 1 / d
			tMax[axis] = (float64(cellAxis[axis]+1) - origin[axis]) * tDelta[axis]
		case d < 0:
			step[axis] = -1
			tDelta[axis] = -1 / d
			tMax[axis] = (origin[axis] - float64(cellAxis[axis])) * tDelta[axis]
		default:
			tDelta[axis] = math.Inf(1)
			tMax[axis] = math.Inf(1)
		}
	}

	t := 0.0
	stepped := -1
	previous := cell
	for t <= length {
		if solid(cell) {
			hit := RayHit{
				Hit:           true,
				Distance:      t,
				Block:         cell,
				Previous:      previous,
				StartedInside: stepped < 0,
				Position:      start.Add(dir.Mul(float32(t))),
			}
			if stepped >= 0 {
				hit.Face = enteredFace(stepped, step[stepped])
			}
			return hit
		}
		previous = cell
		stepped = 0
		if tMax[1] < tMax[stepped] {
			stepped = 1
		}
		if tMax[2] < tMax[stepped] {
			stepped = 2
		}
		t = tMax[stepped]
		tMax[stepped] += tDelta[stepped]
		switch stepped {
		case 0:
			cell.X += step[0]
		case 1:
			cell.Y += step[1]
		case 2:
			cell.Z += step[2]
		}
	}
	return RayHit{}
}

func enteredFace(axis int, step int32) voxel.FaceType {
	switch axis {
	case 0:
		if step > 0 {
			return voxel.XN
		}
		return voxel.XP
	case 1:
		if step > 0 {
			return voxel.YN
		}
		return voxel.YP
	}
	if step > 0 {
		return voxel.ZN
	}
	return voxel.ZP
}
