package voxel

// BlockSource answers world-space block queries for positions outside a chunk.
// Positions without a resident chunk report Air, so faces towards unknown space stay open.
type BlockSource interface {
	BlockAt(pos Int3) BlockKind
}

// BuildVisibility collects the exposed faces of every solid block for the requested face groups.
// A nil source treats everything outside the chunk as air.
func BuildVisibility(c *Chunk, src BlockSource, faces FaceMask) FaceLists {
	var lists FaceLists
	if faces == 0 || c.onlyAir {
		return lists
	}
	sides := faces.Faces()
	origin := c.Origin()
	for y := int32(0); y < CHUNK_SIZE; y++ {
		for z := int32(0); z < CHUNK_SIZE; z++ {
			for x := int32(0); x < CHUNK_SIZE; x++ {
				if c.storage.Get(x, y, z).IsAir() {
					continue
				}
				local := Int3{x, y, z}
				for _, side := range sides {
					if c.faceVisible(src, origin, local, side) {
						lists[side] = append(lists[side], local)
					}
				}
			}
		}
	}
	return lists
}

func (c *Chunk) faceVisible(src BlockSource, origin, local Int3, side FaceType) bool {
	n := local.Add(faceOffsets[side])
	if InChunkBounds(n.X, n.Y, n.Z) {
		return c.storage.Get(n.X, n.Y, n.Z).IsAir()
	}
	if src == nil {
		return true
	}
	return src.BlockAt(origin.Add(n)).IsAir()
}
