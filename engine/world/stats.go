package world

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"

	"github.com/memmaker/voxelstream/engine/util"
)

type counters struct {
	generated         *atomic.Int64
	tombstoned        *atomic.Int64
	meshed            *atomic.Int64
	evicted           *atomic.Int64
	tombstonesDropped *atomic.Int64
	staleDrops        *atomic.Int64
	plansApplied      *atomic.Int64
	plansDiscarded    *atomic.Int64
}

func newCounters() *counters {
	return &counters{
		generated:         atomic.NewInt64(0),
		tombstoned:        atomic.NewInt64(0),
		meshed:            atomic.NewInt64(0),
		evicted:           atomic.NewInt64(0),
		tombstonesDropped: atomic.NewInt64(0),
		staleDrops:        atomic.NewInt64(0),
		plansApplied:      atomic.NewInt64(0),
		plansDiscarded:    atomic.NewInt64(0),
	}
}

// Stats is a point-in-time copy of the streamer counters.
type Stats struct {
	Resident         int
	Tombstones       int
	CachedColumns    int
	GenerationQueued int
	MeshQueued       int

	Generated         int64
	Tombstoned        int64
	Meshed            int64
	Evicted           int64
	TombstonesDropped int64
	StaleDrops        int64
	PlansApplied      int64
	PlansDiscarded    int64

	Phases []util.PhaseStats
}

func (w *World) Stats() Stats {
	w.partitionsMu.RLock()
	resident := len(w.partitions)
	w.partitionsMu.RUnlock()
	w.tombMu.RLock()
	tombs := len(w.tombstones)
	w.tombMu.RUnlock()

	return Stats{
		Resident:          resident,
		Tombstones:        tombs,
		CachedColumns:     w.cachedColumns(),
		GenerationQueued:  w.genQueue.Len(),
		MeshQueued:        w.meshQueue.Len(),
		Generated:         w.stats.generated.Load(),
		Tombstoned:        w.stats.tombstoned.Load(),
		Meshed:            w.stats.meshed.Load(),
		Evicted:           w.stats.evicted.Load(),
		TombstonesDropped: w.stats.tombstonesDropped.Load(),
		StaleDrops:        w.stats.staleDrops.Load(),
		PlansApplied:      w.stats.plansApplied.Load(),
		PlansDiscarded:    w.stats.plansDiscarded.Load(),
		Phases:            w.timer.Phases(),
	}
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "resident %d, tombstones %d, columns %d, queued gen/mesh %d/%d\n",
		s.Resident, s.Tombstones, s.CachedColumns, s.GenerationQueued, s.MeshQueued)
	fmt.Fprintf(&b, "generated %d, tombstoned %d, meshed %d, evicted %d, stale %d, plans %d (+%d discarded)",
		s.Generated, s.Tombstoned, s.Meshed, s.Evicted, s.StaleDrops, s.PlansApplied, s.PlansDiscarded)
	for _, phase := range s.Phases {
		fmt.Fprintf(&b, "\n  %s", phase)
	}
	return b.String()
}
