package world

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/exp/slices"

	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

type plan struct {
	epoch  int64
	center voxel.Int3
	coords []voxel.Int3
}

// planner computes the desired set on a background goroutine. Every submit bumps the epoch,
// results carrying an older epoch are discarded by the owner.
type planner struct {
	radius   int32
	epoch    *atomic.Int64
	pending  *atomic.Int64
	requests chan plan
	results  chan plan
	wg       sync.WaitGroup
}

func newPlanner(radius int32) *planner {
	p := &planner{
		radius:   radius,
		epoch:    atomic.NewInt64(0),
		pending:  atomic.NewInt64(0),
		requests: make(chan plan, 1),
		results:  make(chan plan, 1),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *planner) run() {
	defer p.wg.Done()
	for req := range p.requests {
		req.coords = desiredCoords(req.center, p.radius)
		p.results <- req
	}
}

// submit must only be called from the owner goroutine. A request still waiting in the channel
// is replaced.
func (p *planner) submit(center voxel.Int3) int64 {
	req := plan{epoch: p.epoch.Inc(), center: center}
	select {
	case <-p.requests:
		p.pending.Dec()
	default:
	}
	p.pending.Inc()
	p.requests <- req
	return req.epoch
}

func (p *planner) poll() (plan, bool) {
	select {
	case res := <-p.results:
		p.pending.Dec()
		return res, true
	default:
		return plan{}, false
	}
}

func (p *planner) isCurrent(res plan) bool {
	return res.epoch == p.epoch.Load()
}

func (p *planner) close() {
	close(p.requests)
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-p.results:
		case <-done:
			return
		}
	}
}

// collectPlans applies finished plans without blocking.
func (w *World) collectPlans() {
	if w.planner == nil {
		return
	}
	for {
		res, ok := w.planner.poll()
		if !ok {
			return
		}
		w.acceptPlan(res)
	}
}

func (w *World) acceptPlan(res plan) {
	if !w.planner.isCurrent(res) || res.center != w.observer {
		w.stats.plansDiscarded.Inc()
		util.LogStreamDebug(fmt.Sprintf("[World %s] Discarded plan %d for %v", w.shortID(), res.epoch, res.center))
		return
	}
	w.applyPlan(res.center, res.coords)
}

func sortByDistance(coords []voxel.Int3, center voxel.Int3) {
	slices.SortStableFunc(coords, func(a, b voxel.Int3) int {
		da, db := voxel.DistanceSquared(a, center), voxel.DistanceSquared(b, center)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
}
