package voxel

import "fmt"

type BlockKind uint8

const (
	Air BlockKind = iota
	Stone
	Grass
	Dirt

	blockKindCount
)

func (b BlockKind) IsAir() bool {
	return b == Air
}

func (b BlockKind) String() string {
	switch b {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	}
	return fmt.Sprintf("block(%d)", uint8(b))
}

// TileCoord addresses one tile of the terrain atlas.
type TileCoord struct {
	X, Y int32
}

// faceTiles is indexed by BlockKind and FaceType. Air has no tiles.
var faceTiles = [blockKindCount][6]TileCoord{
	Air:   {},
	Stone: {{3, 0}, {3, 0}, {3, 0}, {3, 0}, {3, 0}, {3, 0}},
	Grass: {{1, 0}, {1, 0}, {1, 0}, {1, 0}, {2, 0}, {0, 0}},
	Dirt:  {{2, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 0}},
}

// FaceTile looks up the atlas tile used to draw one side of a block.
func FaceTile(kind BlockKind, side FaceType) TileCoord {
	mustBeValidFace(side)
	if kind >= blockKindCount {
		return TileCoord{}
	}
	return faceTiles[kind][side]
}
