package voxel

import "testing"

func TestOppositeFacesCancel(t *testing.T) {
	for _, f := range AllFaceTypes {
		sum := f.Offset().Add(FaceType(int32(f) ^ 1).Offset())
		if sum != (Int3{}) {
			t.Fatalf("face %s: offset[f]+offset[f^1] = %v", f, sum)
		}
		if f.Opposite().Opposite() != f {
			t.Fatalf("face %s: opposite is not an involution", f)
		}
	}
}

func TestInvalidFacePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for face 6")
		}
	}()
	FaceType(6).Offset()
}

func TestFaceMask(t *testing.T) {
	m := MaskOf(XP, YN)
	if !m.Has(XP) || !m.Has(YN) || m.Has(ZN) {
		t.Fatalf("unexpected mask %06b", m)
	}
	if m.Without(XP) != MaskOf(YN) {
		t.Fatalf("Without failed: %06b", m.Without(XP))
	}
	if len(AllFaces.Faces()) != 6 {
		t.Fatalf("AllFaces should list six faces")
	}
}

func TestSplitWorldFloors(t *testing.T) {
	tests := []struct {
		pos, chunk, local Int3
	}{
		{Int3{0, 0, 0}, Int3{0, 0, 0}, Int3{0, 0, 0}},
		{Int3{15, 16, 17}, Int3{0, 1, 1}, Int3{15, 0, 1}},
		{Int3{-1, -16, -17}, Int3{-1, -1, -2}, Int3{15, 0, 15}},
	}
	for _, tt := range tests {
		chunk, local := SplitWorld(tt.pos)
		if chunk != tt.chunk || local != tt.local {
			t.Fatalf("SplitWorld(%v) = %v,%v want %v,%v", tt.pos, chunk, local, tt.chunk, tt.local)
		}
	}
}

func TestFaceTiles(t *testing.T) {
	if FaceTile(Grass, YP) != (TileCoord{0, 0}) || FaceTile(Grass, YN) != (TileCoord{2, 0}) || FaceTile(Grass, XP) != (TileCoord{1, 0}) {
		t.Fatalf("grass tiles wrong")
	}
	for _, f := range AllFaceTypes {
		if FaceTile(Stone, f) != (TileCoord{3, 0}) {
			t.Fatalf("stone tile for %s wrong", f)
		}
	}
}
