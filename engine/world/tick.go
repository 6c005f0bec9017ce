package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

// Tick advances the streamer by dt seconds for an observer at the given world position:
// unload sweep, load planning on partition change, then the budgeted generation and mesh drains.
func (w *World) Tick(observer mgl32.Vec3, dt float64) {
	center := voxel.ChunkCoordOf(observer)
	w.collectPlans()

	w.unloadTimer += dt
	if w.unloadTimer >= w.unloadInterval {
		w.unloadTimer = 0
		stop := w.timer.Start("sweep")
		w.sweep(center)
		stop()
	}

	if !w.observerSeen || center != w.observer {
		w.observer = center
		w.observerSeen = true
		stop := w.timer.Start("plan")
		w.plan(center)
		stop()
	}

	stop := w.timer.Start("generate")
	w.drainGeneration()
	stop()

	stop = w.timer.Start("mesh")
	w.drainMeshing()
	stop()
}

// Observer is the partition the last Tick was centered on.
func (w *World) Observer() voxel.Int3 {
	return w.observer
}

func (w *World) sweep(center voxel.Int3) {
	var evicted []voxel.Int3
	w.partitionsMu.Lock()
	for coord := range w.partitions {
		if voxel.ChebyshevDistance(coord, center) > w.radius {
			delete(w.partitions, coord)
			evicted = append(evicted, coord)
		}
	}
	w.partitionsMu.Unlock()

	droppedTombs := 0
	w.tombMu.Lock()
	for coord := range w.tombstones {
		if voxel.ChebyshevDistance(coord, center) > w.radius {
			delete(w.tombstones, coord)
			droppedTombs++
		}
	}
	w.tombMu.Unlock()

	w.heightsMu.Lock()
	for key := range w.heights {
		if key.distance(center) > w.radius {
			delete(w.heights, key)
		}
	}
	w.heightsMu.Unlock()

	if len(evicted) == 0 && droppedTombs == 0 {
		return
	}
	gone := make(map[voxel.Int3]struct{}, len(evicted))
	for _, coord := range evicted {
		gone[coord] = struct{}{}
	}
	w.meshQueue.RemoveIf(func(c voxel.Int3) bool {
		_, ok := gone[c]
		return ok
	})
	for _, coord := range evicted {
		w.sink.ReleaseMesh(coord)
		// the faces that bordered the evicted partition are open again
		w.touchNeighbors(coord)
	}
	w.stats.evicted.Add(int64(len(evicted)))
	w.stats.tombstonesDropped.Add(int64(droppedTombs))
	util.LogStreamDebug(fmt.Sprintf("[World %s] Sweep around %v evicted %d partitions and %d tombstones",
		w.shortID(), center, len(evicted), droppedTombs))
}

func (w *World) plan(center voxel.Int3) {
	if w.planner != nil {
		w.planner.submit(center)
		return
	}
	w.applyPlan(center, desiredCoords(center, w.radius))
}

// applyPlan cancels queued work outside the retention cube and queues the missing coordinates.
func (w *World) applyPlan(center voxel.Int3, desired []voxel.Int3) {
	purged := w.genQueue.RemoveIf(func(c voxel.Int3) bool {
		return voxel.ChebyshevDistance(c, center) > w.radius
	})
	missing := make([]voxel.Int3, 0, len(desired))
	for _, coord := range desired {
		if w.Partition(coord) != nil || w.isTombstoned(coord) {
			continue
		}
		missing = append(missing, coord)
	}
	added := w.enqueueGeneration(center, missing)
	w.stats.plansApplied.Inc()
	util.LogStreamDebug(fmt.Sprintf("[World %s] Observer at %v: queued %d, purged %d, %d waiting",
		w.shortID(), center, added, purged, w.genQueue.Len()))
}

// enqueueGeneration queues coords and reorders the whole generation queue closest first.
func (w *World) enqueueGeneration(center voxel.Int3, coords []voxel.Int3) int {
	added := w.genQueue.PushAll(coords...)
	w.genQueue.SortStableBy(func(c voxel.Int3) int64 {
		return voxel.DistanceSquared(c, center)
	})
	return added
}

// drainGeneration pops up to the generation budget. Stale pops count against the budget; a tick
// that spends all of it on stale entries is reported.
func (w *World) drainGeneration() int {
	stale := 0
	for i := 0; i < w.genBudget; i++ {
		coord, ok := w.genQueue.Pop()
		if !ok {
			break
		}
		if w.Partition(coord) != nil || w.isTombstoned(coord) ||
			voxel.ChebyshevDistance(coord, w.observer) > w.radius {
			w.stats.staleDrops.Inc()
			stale++
			continue
		}
		w.RequestPartition(coord)
	}
	if stale > 0 && stale == w.genBudget {
		util.LogStreamWarning(fmt.Sprintf("[World %s] Whole generation budget spent on %d stale entries, %d still waiting",
			w.shortID(), stale, w.genQueue.Len()))
	}
	return stale
}

func (w *World) drainMeshing() {
	for i := 0; i < w.meshBudget; i++ {
		coord, ok := w.meshQueue.Pop()
		if !ok {
			return
		}
		chunk := w.Partition(coord)
		if chunk == nil {
			w.stats.staleDrops.Inc()
			continue
		}
		w.meshPartition(coord, chunk)
	}
}

func (w *World) meshPartition(coord voxel.Int3, chunk *voxel.Chunk) {
	mesh := chunk.Remesh(w, w.strategy)
	w.sink.UploadMesh(coord, mesh)
	w.stats.meshed.Inc()
	util.LogMeshDebug(fmt.Sprintf("[World %s] Meshed %v: %d triangles", w.shortID(), coord, mesh.TriangleCount()))

	for _, side := range chunk.TakeBoundaryEdits().Faces() {
		w.touchNeighbor(coord, side)
	}
}

// desiredCoords lists the retention cube around center, closest first.
func desiredCoords(center voxel.Int3, radius int32) []voxel.Int3 {
	side := int(2*radius + 1)
	coords := make([]voxel.Int3, 0, side*side*side)
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				coords = append(coords, center.Add(voxel.Int3{X: dx, Y: dy, Z: dz}))
			}
		}
	}
	sortByDistance(coords, center)
	return coords
}
