package voxel

const (
	CHUNK_SIZE         int32 = 16
	CHUNK_SIZE_SQUARED int32 = CHUNK_SIZE * CHUNK_SIZE
	CHUNK_SIZE_CUBED   int32 = CHUNK_SIZE * CHUNK_SIZE * CHUNK_SIZE

	// DefaultSparseThreshold is the fill ratio below which a generated chunk uses sparse storage.
	DefaultSparseThreshold = 0.10
)

func ChebyshevDistance(a, b Int3) int32 {
	dx, dy, dz := Abs(a.X-b.X), Abs(a.Y-b.Y), Abs(a.Z-b.Z)
	m := dx
	if dy > m {
		m = dy
	}
	if dz > m {
		m = dz
	}
	return m
}

func DistanceSquared(a, b Int3) int64 {
	dx := int64(a.X) - int64(b.X)
	dy := int64(a.Y) - int64(b.Y)
	dz := int64(a.Z) - int64(b.Z)
	return dx*dx + dy*dy + dz*dz
}

func Abs(i int32) int32 {
	if i < 0 {
		return -i
	}
	return i
}

// FloorDiv rounds towards negative infinity, b must be positive.
func FloorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// FloorMod is the non-negative remainder matching FloorDiv.
func FloorMod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// SplitWorld resolves a world block position into its chunk coordinate and the local position inside that chunk.
func SplitWorld(pos Int3) (chunk Int3, local Int3) {
	chunk = Int3{FloorDiv(pos.X, CHUNK_SIZE), FloorDiv(pos.Y, CHUNK_SIZE), FloorDiv(pos.Z, CHUNK_SIZE)}
	local = Int3{FloorMod(pos.X, CHUNK_SIZE), FloorMod(pos.Y, CHUNK_SIZE), FloorMod(pos.Z, CHUNK_SIZE)}
	return chunk, local
}

func InChunkBounds(x, y, z int32) bool {
	return x >= 0 && x < CHUNK_SIZE && y >= 0 && y < CHUNK_SIZE && z >= 0 && z < CHUNK_SIZE
}
