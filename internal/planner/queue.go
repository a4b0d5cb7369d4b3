package planner

import "github.com/piwi3910/hsmpeel/internal/geom2d"

// queueArcs implements §4.5: groups new raw fragments into FIFO chains
// by proximity to each chain's tail, then drains the head chain once it
// is stable (no longer receiving new fragments this call).
func (p *Planner) queueArcs(newArcs []Arc) {
	if len(newArcs) == 0 {
		return
	}
	existingCount := len(p.pendingQueues)
	modified := make(map[int]bool)

	for _, a := range newArcs {
		idx, dist := -1, p.opts.Step
		for i, q := range p.pendingQueues {
			if len(q) == 0 {
				continue
			}
			tail := q[len(q)-1]
			if d := pathProximity(tail.Path, a.Path); d < dist {
				dist = d
				idx = i
			}
		}
		if idx == -1 {
			p.pendingQueues = append(p.pendingQueues, []Arc{a})
			modified[len(p.pendingQueues)-1] = true
		} else {
			p.pendingQueues[idx] = append(p.pendingQueues[idx], a)
			modified[idx] = true
		}
	}

	// Fast path (§4.5): exactly one existing queue and one new fragment
	// drains immediately regardless of the general stability rule.
	if existingCount == 1 && len(newArcs) == 1 {
		p.drainHead()
		return
	}
	if len(modified) > 0 && !modified[0] {
		p.drainHead()
	}
}

// pathProximity is a cheap proxy for "closest to" between two arc
// polylines: the minimum distance between either's endpoints.
func pathProximity(a, b geom2d.LineString) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 1e18
	}
	aEnds := [2]geom2d.Point{a[0], a[len(a)-1]}
	bEnds := [2]geom2d.Point{b[0], b[len(b)-1]}
	best := aEnds[0].Distance(bEnds[0])
	for _, x := range aEnds {
		for _, y := range bEnds {
			if d := x.Distance(y); d < best {
				best = d
			}
		}
	}
	return best
}

// drainHead emits and removes the front queue (§4.5).
func (p *Planner) drainHead() {
	if len(p.pendingQueues) == 0 {
		return
	}
	head := p.pendingQueues[0]
	p.pendingQueues = p.pendingQueues[1:]
	p.arcsToPath(head)
}

// flushArcQueues drains every remaining queue in FIFO order (§4.4,
// §4.5). Invariant at plan end: pendingQueues is empty.
func (p *Planner) flushArcQueues() {
	for len(p.pendingQueues) > 0 {
		p.drainHead()
	}
}

// arcsToPath completes each raw fragment in chain order, resolving
// winding (§4.6), joining it to the previously emitted arc (§4.7), and
// appending the result to the output path.
func (p *Planner) arcsToPath(chain []Arc) {
	for _, raw := range chain {
		completed := completeArc(raw, p.opts.Winding, p.lastWinding, p.hasLastArc)

		for _, line := range p.joinArcs(completed) {
			p.path = append(p.path, line)
		}
		p.path = append(p.path, completed)

		p.sweepPath(completed.Path)
		p.lastArc = completed
		p.lastWinding = completed.Winding
		p.hasLastArc = true
	}
}

// sweepPath unions cut_area_swept with arc.path buffered by step/2
// (§4.3, §4.7), one Stadium per consecutive vertex pair.
func (p *Planner) sweepPath(path geom2d.LineString) {
	halfStep := p.opts.Step / 2
	for i := 1; i < len(path); i++ {
		p.cutAreaSwept = append(p.cutAreaSwept, geom2d.Stadium{A: path[i-1], B: path[i], Radius: halfStep})
	}
}
