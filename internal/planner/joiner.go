package planner

import "github.com/piwi3910/hsmpeel/internal/geom2d"

// joinArcs builds the connector Line segments from the planner's last
// emitted arc to nextArc's start, classifying each per §4.7. Returns nil
// when this is the first emitted arc (no predecessor to join from) or
// when the two points already coincide.
func (p *Planner) joinArcs(nextArc Arc) []Line {
	if !p.hasLastArc {
		return nil
	}
	from := p.lastArc.End
	to := nextArc.Start
	if from.Equal(to, 1e-9) {
		return nil
	}

	insideTol := p.opts.Step / 20
	if p.pocket.SegmentNearOrInside(from, to, insideTol) {
		return p.splitInsideSegment(from, to)
	}
	return []Line{{Start: from, End: to, Path: geom2d.LineString{from, to}, MoveStyle: RapidOutside}}
}

// splitInsideSegment splits connector S=from->to against cut_area_swept,
// classifying the portions not yet swept as CUT (re-engaging virgin
// material) and the rest as RAPID_INSIDE. This reproduces the effect of
// §4.7's buffer/difference/buffer chain using the exact Region/Interval
// primitives in internal/geom2d instead of materializing an offset
// polygon twice.
func (p *Planner) splitInsideSegment(from, to geom2d.Point) []Line {
	gaps := p.cutAreaSwept.Uncovered(from, to)
	if len(gaps) == 0 {
		return []Line{{Start: from, End: to, Path: geom2d.LineString{from, to}, MoveStyle: RapidInside}}
	}

	bounds := boundaryParams(gaps)
	var lines []Line
	prev := 0.0
	for _, t := range bounds {
		if t <= prev+1e-12 {
			continue
		}
		a := from.Lerp(to, prev)
		b := from.Lerp(to, t)
		style := RapidInside
		if withinAnyInterval(gaps, (prev+t)/2) {
			style = Cut
		}
		lines = append(lines, Line{Start: a, End: b, Path: geom2d.LineString{a, b}, MoveStyle: style})
		prev = t
	}
	if len(lines) == 0 {
		return []Line{{Start: from, End: to, Path: geom2d.LineString{from, to}, MoveStyle: RapidInside}}
	}

	// Clamp endpoints to the caller's exact points to erase float drift
	// introduced by interval math (§4.7).
	lines[0].Start = from
	lines[0].Path[0] = from
	last := len(lines) - 1
	lines[last].End = to
	lines[last].Path[len(lines[last].Path)-1] = to
	return lines
}

// boundaryParams returns the sorted, deduplicated parameter values
// (including 0 and 1) at which gaps' interval boundaries fall.
func boundaryParams(gaps []geom2d.Interval) []float64 {
	vals := map[float64]bool{0: true, 1: true}
	for _, g := range gaps {
		vals[g.Lo] = true
		vals[g.Hi] = true
	}
	out := make([]float64, 0, len(vals))
	for v := range vals {
		out = append(out, v)
	}
	// Simple insertion sort: boundary counts are tiny (a handful of gaps
	// per connector), so this avoids pulling in sort for a few values.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func withinAnyInterval(ivs []geom2d.Interval, t float64) bool {
	for _, iv := range ivs {
		if t >= iv.Lo-1e-12 && t <= iv.Hi+1e-12 {
			return true
		}
	}
	return false
}
