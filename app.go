package main

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/solarlune/gocoro"

	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
	"github.com/memmaker/voxelstream/engine/world"
)

// meshCounter stands in for a renderer: it keeps the triangle count of every uploaded mesh.
type meshCounter struct {
	mu        sync.Mutex
	triangles map[voxel.Int3]int
	uploads   int
	releases  int
}

func newMeshCounter() *meshCounter {
	return &meshCounter{triangles: make(map[voxel.Int3]int)}
}

func (m *meshCounter) UploadMesh(coord voxel.Int3, mesh *voxel.MeshBuffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triangles[coord] = mesh.TriangleCount()
	m.uploads++
}

func (m *meshCounter) ReleaseMesh(coord voxel.Int3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.triangles, coord)
	m.releases++
}

func (m *meshCounter) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.triangles {
		total += n
	}
	return fmt.Sprintf("%d live meshes, %d triangles, %d uploads, %d releases", len(m.triangles), total, m.uploads, m.releases)
}

// observerPath walks the observer along waypoints. Each leg waits until the world has caught up.
type observerPath struct {
	position  mgl32.Vec3
	waypoints []mgl32.Vec3
	legTime   float64
	world     *world.World
	lerper    *util.Lerper[mgl32.Vec3]
	coroutine gocoro.Coroutine
}

func newObserverPath(w *world.World, start mgl32.Vec3, waypoints []mgl32.Vec3, legTime float64) *observerPath {
	o := &observerPath{
		position:  start,
		waypoints: waypoints,
		legTime:   legTime,
		world:     w,
		coroutine: gocoro.NewCoroutine(),
	}
	should(o.coroutine.Run(o.walkScript))
	return o
}

func (o *observerPath) walkScript(exe *gocoro.Execution) {
	should(exe.YieldFunc(o.worldIdle))
	for i, target := range o.waypoints {
		util.LogDriverInfo(fmt.Sprintf("[Driver] Leg %d: %v -> %v", i+1, o.position, target))
		setPosition := func(v mgl32.Vec3) { o.position = v }
		o.lerper = util.NewLerper[mgl32.Vec3](util.Lerp3, setPosition, o.position, target, o.legTime).WithEasing(util.EaseInOutQuad)
		should(exe.YieldFunc(o.lerper.IsDone))
		o.lerper = nil
		should(exe.YieldFunc(o.worldIdle))
		o.digBelow()
	}
}

// digBelow removes the first solid block under the observer, the edit travels through the
// regular remesh path.
func (o *observerPath) digBelow() {
	hit := o.world.Raycast(o.position, o.position.Sub(mgl32.Vec3{0, 64, 0}))
	if !hit.Hit {
		return
	}
	if o.world.SetBlock(hit.Block, voxel.Air) {
		util.LogDriverInfo(fmt.Sprintf("[Driver] Dug out %v", hit.Block))
	}
}

func (o *observerPath) worldIdle() bool {
	return o.world.GenerationQueueLen() == 0 && o.world.MeshQueueLen() == 0
}

func (o *observerPath) Update(deltaTime float64) {
	if o.lerper != nil && !o.lerper.IsDone() {
		o.lerper.Update(deltaTime)
	} else if o.coroutine.Running() {
		o.coroutine.Update()
	}
}

func (o *observerPath) Done() bool {
	return !o.coroutine.Running()
}

// squareTour visits the corners of a square of the given side around start, in partitions.
func squareTour(start mgl32.Vec3, side int32) []mgl32.Vec3 {
	d := float32(side * voxel.CHUNK_SIZE)
	return []mgl32.Vec3{
		start.Add(mgl32.Vec3{d, 0, 0}),
		start.Add(mgl32.Vec3{d, 0, d}),
		start.Add(mgl32.Vec3{0, 0, d}),
		start,
	}
}

func should(err error) {
	if err != nil {
		util.LogDriverError(err.Error())
	}
}
