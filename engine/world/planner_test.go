package world

// wait blocks for the next result. It returns false when nothing is in flight.
func (p *planner) wait() (plan, bool) {
	if p.pending.Load() == 0 {
		return plan{}, false
	}
	res := <-p.results
	p.pending.Dec()
	return res, true
}

// flushPlans blocks until every submitted plan has been received.
func (w *World) flushPlans() {
	if w.planner == nil {
		return
	}
	for {
		res, ok := w.planner.wait()
		if !ok {
			return
		}
		w.acceptPlan(res)
	}
}
