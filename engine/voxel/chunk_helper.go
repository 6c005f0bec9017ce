package voxel

// FaceLists holds, per face direction, the local positions of blocks whose face in that
// direction borders air.
type FaceLists [6][]Int3

func (l FaceLists) Count() int {
	n := 0
	for _, faces := range l {
		n += len(faces)
	}
	return n
}

func (l FaceLists) Equal(other FaceLists) bool {
	for side := range l {
		if len(l[side]) != len(other[side]) {
			return false
		}
		for i := range l[side] {
			if l[side][i] != other[side][i] {
				return false
			}
		}
	}
	return true
}
