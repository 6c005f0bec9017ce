package world

import (
	"github.com/memmaker/voxelstream/engine/voxel"
)

// MeshSink receives geometry for the renderer. UploadMesh is called after every mesh pass,
// ReleaseMesh when a partition is evicted. Both are called from the goroutine driving Tick.
type MeshSink interface {
	UploadMesh(coord voxel.Int3, mesh *voxel.MeshBuffer)
	ReleaseMesh(coord voxel.Int3)
}

type noopSink struct{}

func (noopSink) UploadMesh(voxel.Int3, *voxel.MeshBuffer) {}
func (noopSink) ReleaseMesh(voxel.Int3)                   {}

type PartitionState int

const (
	StateUnknown PartitionState = iota
	StateTombstoned
	StateQueuedForGeneration
	StateResidentDirty
	StateQueuedForMeshing
	StateResidentMeshed
)

func (s PartitionState) String() string {
	switch s {
	case StateTombstoned:
		return "tombstoned"
	case StateQueuedForGeneration:
		return "queued-for-generation"
	case StateResidentDirty:
		return "resident-dirty"
	case StateQueuedForMeshing:
		return "queued-for-meshing"
	case StateResidentMeshed:
		return "resident-meshed"
	}
	return "unknown"
}

// IsResident is true for every state that holds voxel data.
func (s PartitionState) IsResident() bool {
	return s == StateResidentDirty || s == StateQueuedForMeshing || s == StateResidentMeshed
}
