package util

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// PhaseStats aggregates the durations of one named phase.
type PhaseStats struct {
	Name  string
	Last  time.Duration
	Total time.Duration
	Count int64
	Min   time.Duration
	Max   time.Duration
}

func (p PhaseStats) Average() time.Duration {
	if p.Count == 0 {
		return 0
	}
	return p.Total / time.Duration(p.Count)
}

func (p PhaseStats) String() string {
	return fmt.Sprintf("%s last: %s, avg: %s (min: %s, max: %s, n=%d)", p.Name, p.Last, p.Average(), p.Min, p.Max, p.Count)
}

type Timer struct {
	mu         sync.Mutex
	states     map[string]*PhaseStats
	phaseNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*PhaseStats),
	}
}

// Start begins measuring a phase; call the returned func when the phase ends.
func (t *Timer) Start(name string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		t.record(name, elapsed)
		return elapsed
	}
}

func (t *Timer) record(name string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[name]
	if !ok {
		t.phaseNames = append(t.phaseNames, name)
		state = &PhaseStats{Name: name, Min: elapsed, Max: elapsed}
		t.states[name] = state
	}
	state.Last = elapsed
	state.Total += elapsed
	state.Count++
	if elapsed < state.Min {
		state.Min = elapsed
	}
	if elapsed > state.Max {
		state.Max = elapsed
	}
}

func (t *Timer) Phase(name string) (PhaseStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[name]
	if !ok {
		return PhaseStats{}, false
	}
	return *state, true
}

// Phases returns a copy of all phases, sorted by name.
func (t *Timer) Phases() []PhaseStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PhaseStats, 0, len(t.states))
	for _, name := range t.phaseNames {
		out = append(out, *t.states[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states = make(map[string]*PhaseStats)
	t.phaseNames = nil
}

func (t *Timer) String() string {
	var str string
	for _, p := range t.Phases() {
		str += p.String() + "\n"
	}
	return str
}
