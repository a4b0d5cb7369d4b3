package planner

import (
	"math"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

// extrapolateOffset is the large constant offset applied to both ends of
// a combined edge (§4.2 step 1) so controller overshoot during the
// numerical search always lands on a valid interpolation target.
const extrapolateOffset = 1e5

// arcSegmentsPerRevolution controls how densely a proposed circle's
// boundary is sampled into polyline fragments.
const arcSegmentsPerRevolution = 72

// calculateArc implements §4.2: it advances the cursor along edge from
// startDist, iteratively fitting a tangent circle whose step-over over
// the cut area matches p.opts.Step, and returns the new cursor position
// plus the raw (uncompleted) arc fragments to emit.
func (p *Planner) calculateArc(edge geom2d.LineString, startDist, minDist float64) (float64, []Arc) {
	ext := edge.Extrapolate(extrapolateOffset)
	D := extrapolateOffset

	remaining := edge.Length() - startDist
	desired := math.Min(p.opts.Step, remaining)
	if desired < 0 {
		desired = 0
	}

	cornerZoom := p.opts.CornerZoom * p.opts.Step
	cornerZoomApplied := false
	if cornerZoom > 0 {
		tentativeCenter := ext.Interpolate(D+startDist+desired, false)
		tentativeRadius := p.voronoi.DistanceFromGeom(tentativeCenter)
		if tentativeRadius < cornerZoom {
			shrunk := p.opts.Step - p.opts.Step*p.opts.CornerZoomEffect*(cornerZoom-tentativeRadius)/cornerZoom
			if shrunk < 0 {
				shrunk = 0
			}
			if shrunk < desired {
				desired = shrunk
				cornerZoomApplied = true
			}
		}
	}

	distance := startDist + desired

	var bestDistance float64
	var bestArcs []Arc
	var bestProgress float64
	bestDiff := math.Inf(1)
	converged := false

	for iter := 0; iter < p.opts.IterationCount; iter++ {
		center := ext.Interpolate(D+distance, false)
		radius := p.voronoi.DistanceFromGeom(center)
		circle := geom2d.Circle{Center: center, Radius: radius}

		arcs := p.diffCircle(circle)

		if len(arcs) == 0 {
			if bestArcs == nil {
				p.lastCircle = &circle
				p.recordDiagnostic(EmptyFragment, "circle fully subsumed by cut area")
				return distance, nil
			}
			break
		}

		progress := measureProgress(arcs, p.lastCircle, p.cutArea)
		diff := math.Abs(desired - progress)
		if diff < bestDiff {
			bestDiff = diff
			bestDistance = distance
			bestArcs = arcs
			bestProgress = progress
		}
		if desired == 0 || diff <= desired/20 {
			converged = true
			break
		}

		delta := p.controller.Next(desired, progress)
		distance += delta
	}

	if !converged && bestDistance < minDist {
		p.recordDiagnostic(BackwardsDrift, "controller settled behind min_dist")
		return edge.Length(), nil
	}

	finalDistance := bestDistance
	if finalDistance > edge.Length() {
		finalDistance = edge.Length()
	}

	center := ext.Interpolate(D+finalDistance, false)
	radius := p.voronoi.DistanceFromGeom(center)
	circle := geom2d.Circle{Center: center, Radius: radius}
	finalArcs := p.diffCircle(circle)

	p.lastCircle = &circle
	p.cutArea.add(circle.Center, circle.Radius)

	if !converged {
		p.recordDiagnostic(FitterUnconverged, "iteration budget exhausted before convergence")
		p.recordWorstArc(bestProgress, desired)
	}

	tag := ""
	switch {
	case !converged:
		tag = "orange"
	case cornerZoomApplied:
		tag = "red"
	}

	filtered := p.filterArcs(finalArcs, tag)
	return finalDistance, filtered
}

// filterArcs applies §4.2 step 7: drop fragments too short to matter or
// hugging the pocket boundary (near-edge jitter), and tags the survivors.
func (p *Planner) filterArcs(arcs []Arc, tag string) []Arc {
	minLen := p.opts.Step / 20
	var out []Arc
	for _, a := range arcs {
		if len(a.Path) < 3 {
			continue
		}
		if a.Path.Length() <= minLen {
			continue
		}
		if p.isJitter(a) {
			continue
		}
		a.Debug = tag
		out = append(out, a)
	}
	return out
}

// isJitter reports whether arc a's path hugs within JitterFilter of any
// boundary ring of the pocket (or, for an outside-pocket plan, of any
// obstacle/outer-box ring) closely enough that it is near-edge noise
// rather than a real cut.
func (p *Planner) isJitter(a Arc) bool {
	for _, ring := range p.boundaryRings {
		allNear := true
		for _, v := range a.Path {
			if ring.DistanceToPoint(v) > p.opts.JitterFilter {
				allNear = false
				break
			}
		}
		if allNear {
			return true
		}
	}
	return false
}
