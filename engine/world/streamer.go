package world

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"github.com/memmaker/voxelstream/engine/config"
	"github.com/memmaker/voxelstream/engine/queue"
	"github.com/memmaker/voxelstream/engine/terrain"
	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

type columnKey struct {
	X, Z int32
}

// distance is the Chebyshev distance to the column of coord, ignoring Y.
func (k columnKey) distance(coord voxel.Int3) int32 {
	dx := voxel.Abs(k.X - coord.X)
	dz := voxel.Abs(k.Z - coord.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// World streams partitions around an observer. Tick, every mutating method and every query that
// reads chunk contents (BlockAt, State, Partition, Raycast) belong to a single owner goroutine;
// chunks carry no locks. The containers carry their own, so Stats, ResidentCoords,
// TombstonedCoords and the queue lengths may be called from other goroutines.
//
// Lock order: partitionsMu, tombMu, heightsMu, generation queue, mesh queue.
type World struct {
	id        uuid.UUID
	generator *terrain.Generator
	sink      MeshSink

	radius         int32
	genBudget      int
	meshBudget     int
	unloadInterval float64
	strategy       voxel.RemeshStrategy

	partitionsMu sync.RWMutex
	partitions   map[voxel.Int3]*voxel.Chunk

	tombMu     sync.RWMutex
	tombstones map[voxel.Int3]struct{}

	heightsMu sync.Mutex
	heights   map[columnKey]*terrain.HeightMap

	genQueue  *queue.WorkQueue[voxel.Int3]
	meshQueue *queue.WorkQueue[voxel.Int3]

	unloadTimer  float64
	observer     voxel.Int3
	observerSeen bool

	planner *planner
	stats   *counters
	timer   *util.Timer
}

type Option func(*World)

func WithMeshSink(sink MeshSink) Option {
	return func(w *World) {
		if sink != nil {
			w.sink = sink
		}
	}
}

// WithGenerator replaces the generator built from the configured seed.
func WithGenerator(gen *terrain.Generator) Option {
	return func(w *World) {
		if gen != nil {
			w.generator = gen
		}
	}
}

// New builds an empty world. The configuration is expected to be valid, see config.Validate.
func New(cfg config.Config, opts ...Option) *World {
	strategy, err := cfg.RemeshStrategy()
	if err != nil {
		panic(err)
	}
	w := &World{
		id:             uuid.New(),
		generator:      terrain.NewGenerator(cfg.Seed, cfg.Terrain.Params()),
		sink:           noopSink{},
		radius:         cfg.Streaming.RetentionRadius,
		genBudget:      cfg.Streaming.GenerationBudget,
		meshBudget:     cfg.Streaming.MeshBudget,
		unloadInterval: cfg.Streaming.UnloadInterval,
		strategy:       strategy,
		partitions:     make(map[voxel.Int3]*voxel.Chunk),
		tombstones:     make(map[voxel.Int3]struct{}),
		heights:        make(map[columnKey]*terrain.HeightMap),
		genQueue:       queue.NewWorkQueue[voxel.Int3](),
		meshQueue:      queue.NewWorkQueue[voxel.Int3](),
		stats:          newCounters(),
		timer:          util.NewTimer(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if cfg.Streaming.AsyncPlanning {
		w.planner = newPlanner(w.radius)
	}
	util.LogStreamInfo(fmt.Sprintf("[World %s] Created with seed %d, retention radius %d, %s remesh, async planning %v",
		w.shortID(), w.generator.Seed(), w.radius, w.strategy, w.planner != nil))
	return w
}

func (w *World) ID() uuid.UUID {
	return w.id
}

func (w *World) shortID() string {
	return w.id.String()[:8]
}

func (w *World) Generator() *terrain.Generator {
	return w.generator
}

func (w *World) RetentionRadius() int32 {
	return w.radius
}

// Close stops the background planner, if any. The world must not be ticked afterwards.
func (w *World) Close() {
	if w.planner != nil {
		w.planner.close()
		w.planner = nil
	}
}

// Partition returns the resident partition or nil.
func (w *World) Partition(coord voxel.Int3) *voxel.Chunk {
	w.partitionsMu.RLock()
	defer w.partitionsMu.RUnlock()
	return w.partitions[coord]
}

func (w *World) isTombstoned(coord voxel.Int3) bool {
	w.tombMu.RLock()
	defer w.tombMu.RUnlock()
	_, ok := w.tombstones[coord]
	return ok
}

// BlockAt returns Air for positions in partitions that are not resident.
func (w *World) BlockAt(pos voxel.Int3) voxel.BlockKind {
	coord, local := voxel.SplitWorld(pos)
	chunk := w.Partition(coord)
	if chunk == nil {
		return voxel.Air
	}
	return chunk.Block(local.X, local.Y, local.Z)
}

func (w *World) State(coord voxel.Int3) PartitionState {
	if chunk := w.Partition(coord); chunk != nil {
		switch {
		case w.meshQueue.Contains(coord):
			return StateQueuedForMeshing
		case chunk.Meshed() && !chunk.IsDirty():
			return StateResidentMeshed
		default:
			return StateResidentDirty
		}
	}
	if w.isTombstoned(coord) {
		return StateTombstoned
	}
	if w.genQueue.Contains(coord) {
		return StateQueuedForGeneration
	}
	return StateUnknown
}

func (w *World) ResidentCoords() []voxel.Int3 {
	w.partitionsMu.RLock()
	defer w.partitionsMu.RUnlock()
	return maps.Keys(w.partitions)
}

func (w *World) TombstonedCoords() []voxel.Int3 {
	w.tombMu.RLock()
	defer w.tombMu.RUnlock()
	return maps.Keys(w.tombstones)
}

func (w *World) GenerationQueueLen() int {
	return w.genQueue.Len()
}

func (w *World) MeshQueueLen() int {
	return w.meshQueue.Len()
}

// RequestPartition returns the resident partition for coord, generating it on the spot when
// the coordinate is unknown. It returns nil for empty partitions, which are tombstoned.
func (w *World) RequestPartition(coord voxel.Int3) *voxel.Chunk {
	if chunk := w.Partition(coord); chunk != nil {
		return chunk
	}
	if w.isTombstoned(coord) {
		return nil
	}

	hm := w.columnHeights(coord.X, coord.Z)
	if w.generator.IsEmptyWith(coord, hm) {
		w.tombMu.Lock()
		w.tombstones[coord] = struct{}{}
		w.tombMu.Unlock()
		w.dequeueGeneration(coord)
		w.stats.tombstoned.Inc()
		util.LogStreamDebug(fmt.Sprintf("[World %s] Tombstoned %v", w.shortID(), coord))
		return nil
	}

	chunk := w.generator.PopulateWith(coord, hm)
	w.partitionsMu.Lock()
	if existing, ok := w.partitions[coord]; ok {
		w.partitionsMu.Unlock()
		return existing
	}
	w.partitions[coord] = chunk
	w.partitionsMu.Unlock()
	w.dequeueGeneration(coord)
	w.stats.generated.Inc()

	w.touchNeighbors(coord)
	w.meshQueue.Push(coord)
	util.LogStreamDebug(fmt.Sprintf("[World %s] Loaded %v (%d blocks, %s)", w.shortID(), coord, chunk.BlockCount(), chunk.StorageMode()))
	return chunk
}

// dequeueGeneration drops coord from the generation queue when a direct request resolved it
// ahead of the drain. Popped coordinates skip the scan.
func (w *World) dequeueGeneration(coord voxel.Int3) {
	if w.genQueue.Contains(coord) {
		w.genQueue.RemoveIf(func(c voxel.Int3) bool { return c == coord })
	}
}

// touchNeighbors marks the face that every resident neighbor shares with coord as dirty and
// queues the neighbor for meshing.
func (w *World) touchNeighbors(coord voxel.Int3) {
	for _, side := range voxel.AllFaceTypes {
		w.touchNeighbor(coord, side)
	}
}

func (w *World) touchNeighbor(coord voxel.Int3, side voxel.FaceType) {
	neighborCoord := coord.Add(side.Offset())
	neighbor := w.Partition(neighborCoord)
	if neighbor == nil {
		return
	}
	neighbor.MarkFaceDirty(side.Opposite())
	w.meshQueue.Push(neighborCoord)
}

// QueueForRemesh marks one face of a resident partition dirty and queues it for meshing. It
// reports whether a new queue entry was created.
func (w *World) QueueForRemesh(coord voxel.Int3, side voxel.FaceType) bool {
	chunk := w.Partition(coord)
	if chunk == nil {
		return false
	}
	chunk.MarkFaceDirty(side)
	return w.meshQueue.Push(coord)
}

// SetBlock edits a block of a resident partition. Edits on partition borders are forwarded to
// the neighbors after the next mesh pass.
func (w *World) SetBlock(pos voxel.Int3, kind voxel.BlockKind) bool {
	coord, local := voxel.SplitWorld(pos)
	chunk := w.Partition(coord)
	if chunk == nil {
		return false
	}
	chunk.SetBlock(local.X, local.Y, local.Z, kind)
	if chunk.IsDirty() {
		w.meshQueue.Push(coord)
	}
	return true
}

// columnHeights caches the height map of a partition column. The noise is evaluated without
// holding the lock; a racing writer simply wins.
func (w *World) columnHeights(cx, cz int32) *terrain.HeightMap {
	key := columnKey{X: cx, Z: cz}
	w.heightsMu.Lock()
	hm, ok := w.heights[key]
	w.heightsMu.Unlock()
	if ok {
		return hm
	}
	hm = w.generator.Heights(cx, cz)
	w.heightsMu.Lock()
	if existing, ok := w.heights[key]; ok {
		hm = existing
	} else {
		w.heights[key] = hm
	}
	w.heightsMu.Unlock()
	return hm
}

func (w *World) cachedColumns() int {
	w.heightsMu.Lock()
	defer w.heightsMu.Unlock()
	return len(w.heights)
}
