package planner

import (
	"math"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

// completeArc fills in Start/End/StartAngle/SpanAngle/Winding on a raw
// Arc fragment (Origin/Radius/Path only) per §4.6. hasLastWinding/
// lastWinding supply the previous emitted arc's winding, used only when
// winding is Closest.
func completeArc(a Arc, winding Winding, lastWinding Winding, hasLastWinding bool) Arc {
	effective := winding
	if winding == Closest {
		switch {
		case !hasLastWinding:
			effective = CW
		case lastWinding == CW:
			effective = CCW
		default:
			effective = CW
		}
	}

	path := a.Path
	start := path[0]
	end := path[len(path)-1]
	mid := path.Interpolate(0.5, true)

	startAngle := geom2d.AngleFromOrigin(a.Origin, start)
	midAngle := geom2d.AngleFromOrigin(a.Origin, mid)
	endAngle := geom2d.AngleFromOrigin(a.Origin, end)

	// ds/de use the shortest signed angular difference rather than a
	// non-negative modulo, since the sign is what the winding comparison
	// needs (§4.6, §9(a)): a 0 or exact-tie difference swaps
	// unconditionally, which falls out of requiring strict sign
	// agreement below.
	ds := angleDiff(startAngle, midAngle)
	de := angleDiff(midAngle, endAngle)

	// Raw fragments are always sampled in increasing-angle order
	// (arcPolyline walks a gap's angular interval forward), which is the
	// CW-natural direction in this convention — so CW agreement means ds
	// and de stay negative; CCW agreement means they stay positive. A tie
	// (ds or de exactly 0) fails both agreement checks and reverses
	// unconditionally, matching §9(a)'s documented tie-break.
	wantCW := effective == CW
	dsAgrees := (wantCW && ds < 0) || (!wantCW && ds > 0)
	deAgrees := (wantCW && de < 0) || (!wantCW && de > 0)
	if !dsAgrees || !deAgrees {
		path = path.Reverse()
		start, end = end, start
		startAngle, endAngle = endAngle, startAngle
	}

	var span float64
	if wantCW {
		span = geom2d.ModTwoPi(endAngle - startAngle)
		if span == 0 {
			span = 2 * math.Pi
		}
	} else {
		span = -geom2d.ModTwoPi(startAngle - endAngle)
		if span == 0 {
			span = -2 * math.Pi
		}
	}

	return Arc{
		Origin:     a.Origin,
		Radius:     a.Radius,
		Start:      start,
		End:        end,
		HasAngles:  true,
		StartAngle: startAngle,
		SpanAngle:  span,
		Winding:    effective,
		Path:       path,
		Debug:      a.Debug,
	}
}

// angleDiff returns a-b wrapped to the shortest signed representative in
// (-pi, pi].
func angleDiff(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
