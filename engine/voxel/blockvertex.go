package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type FaceType int32

// Opposite faces differ only in the lowest bit.
const (
	ZN FaceType = iota
	ZP
	XN
	XP
	YN
	YP
)

var faceOffsets = [6]Int3{
	ZN: {0, 0, -1},
	ZP: {0, 0, 1},
	XN: {-1, 0, 0},
	XP: {1, 0, 0},
	YN: {0, -1, 0},
	YP: {0, 1, 0},
}

var AllFaceTypes = [6]FaceType{ZN, ZP, XN, XP, YN, YP}

func (f FaceType) Valid() bool {
	return f >= 0 && f < 6
}

func (f FaceType) Offset() Int3 {
	mustBeValidFace(f)
	return faceOffsets[f]
}

func (f FaceType) Opposite() FaceType {
	mustBeValidFace(f)
	return f ^ 1
}

func (f FaceType) String() string {
	switch f {
	case ZN:
		return "-Z"
	case ZP:
		return "+Z"
	case XN:
		return "-X"
	case XP:
		return "+X"
	case YN:
		return "-Y"
	case YP:
		return "+Y"
	}
	return fmt.Sprintf("face(%d)", int32(f))
}

func mustBeValidFace(f FaceType) {
	if !f.Valid() {
		panic(fmt.Sprintf("voxel: invalid face index %d", int32(f)))
	}
}

// FaceMask has one bit per FaceType.
type FaceMask uint8

const AllFaces FaceMask = 0x3F

func MaskOf(faces ...FaceType) FaceMask {
	var m FaceMask
	for _, f := range faces {
		m = m.With(f)
	}
	return m
}

func (m FaceMask) Has(f FaceType) bool {
	mustBeValidFace(f)
	return m&(1<<uint(f)) != 0
}

func (m FaceMask) With(f FaceType) FaceMask {
	mustBeValidFace(f)
	return m | (1 << uint(f))
}

func (m FaceMask) Without(f FaceType) FaceMask {
	mustBeValidFace(f)
	return m &^ (1 << uint(f))
}

func (m FaceMask) Faces() []FaceType {
	var faces []FaceType
	for _, f := range AllFaceTypes {
		if m.Has(f) {
			faces = append(faces, f)
		}
	}
	return faces
}

// faceTemplates holds the four corners of each unit face, counter-clockwise seen from outside,
// with the untransformed texture coordinate of every corner.
var faceTemplates = [6][4]struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}{
	ZN: {{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}}},
	ZP: {{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}}},
	XN: {{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}}},
	XP: {{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 0}}},
	YN: {{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 1}}},
	YP: {{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 0}}},
}

const (
	AtlasTilesPerRow = 16
	atlasTileSize    = float32(1) / AtlasTilesPerRow
)

// TileUV maps a corner uv in [0,1] into the given atlas tile. V is flipped because the
// atlas rows grow downwards.
func TileUV(tile TileCoord, uv mgl32.Vec2) mgl32.Vec2 {
	u := float32(tile.X)*atlasTileSize + uv.X()*atlasTileSize
	v := float32(tile.Y+1)*atlasTileSize - uv.Y()*atlasTileSize
	return mgl32.Vec2{u, v}
}
