package planner

import (
	"math"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

// cutArea is the union of every proposed tangent circle (§4.3). It
// drives fragment discovery in the fitter and only ever grows.
type cutArea struct {
	disks []geom2d.Disk
}

func (c *cutArea) add(center geom2d.Point, radius float64) {
	c.disks = append(c.disks, geom2d.Disk{Center: center, Radius: radius})
}

func (c *cutArea) contains(pt geom2d.Point) bool {
	for _, d := range c.disks {
		if d.Contains(pt) {
			return true
		}
	}
	return false
}

// distance returns how far pt is from the cut area: 0 if covered by any
// disk, otherwise the minimum gap to the nearest disk's boundary. Used
// by the fitter's initial-progress measurement (§4.2.e) before any
// previous circle exists to compare against.
func (c *cutArea) distance(pt geom2d.Point) float64 {
	if len(c.disks) == 0 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for _, d := range c.disks {
		dist := pt.Distance(d.Center) - d.Radius
		if dist < 0 {
			dist = 0
		}
		if dist < best {
			best = dist
		}
	}
	return best
}

// arcsFromCircleDiff subtracts the cut area from circle c's boundary and
// returns one raw Arc fragment per surviving connected arc (§4.2.c). Each
// fragment carries only Origin/Radius/Path; completion happens later, at
// emission time, in completeArc.
func arcsFromCircleDiff(c geom2d.Circle, area *cutArea, segmentsPerRevolution int) []Arc {
	var covered []geom2d.AngleInterval
	for _, d := range area.disks {
		other := geom2d.Circle{Center: d.Center, Radius: d.Radius}
		if iv, ok := c.CoveredAngleInterval(other); ok {
			covered = append(covered, iv)
		}
	}
	merged := geom2d.MergeAngleIntervals(covered)
	gaps := geom2d.ComplementAngleIntervals(merged)

	var out []Arc
	for _, g := range gaps {
		if g.Span <= 1e-9 {
			continue
		}
		out = append(out, Arc{
			Origin: c.Center,
			Radius: c.Radius,
			Path:   arcPolyline(c, g, segmentsPerRevolution),
		})
	}
	return out
}

// arcPolyline samples circle c's boundary over angular interval g into a
// polyline dense enough for later Hausdorff-style progress measurement
// and for complete_arc's mid-point winding test.
func arcPolyline(c geom2d.Circle, g geom2d.AngleInterval, segmentsPerRevolution int) geom2d.LineString {
	if segmentsPerRevolution < 8 {
		segmentsPerRevolution = 8
	}
	n := int(g.Span / (2 * math.Pi) * float64(segmentsPerRevolution))
	if n < 2 {
		n = 2
	}
	out := make(geom2d.LineString, 0, n+1)
	for i := 0; i <= n; i++ {
		angle := g.Start + g.Span*float64(i)/float64(n)
		out = append(out, geom2d.PointOnCircle(c.Center, c.Radius, angle))
	}
	return out
}

// diffCircle diffs circle against the planner's cut area and then clips
// the surviving fragments to the pocket polygon (material minus
// obstacles, §4.8), so a medial-axis center that drifts slightly outside
// the allowed region by grid-approximation error never produces a
// fragment the fitter would otherwise accept.
func (p *Planner) diffCircle(circle geom2d.Circle) []Arc {
	arcs := arcsFromCircleDiff(circle, p.cutArea, arcSegmentsPerRevolution)
	return clipArcsToMask(arcs, p.pocket)
}

// clipArcsToMask splits each arc fragment's path wherever it crosses
// mask's boundary, keeping only the portions inside mask. This plays the
// role of the external geometry library's split(geom, splitter) op
// (§6), approximated by walking the already-densely-sampled polyline and
// bisecting across any sign change of mask.Contains.
func clipArcsToMask(arcs []Arc, mask geom2d.Polygon) []Arc {
	if len(mask.Exterior) == 0 {
		return arcs
	}
	var out []Arc
	for _, a := range arcs {
		var current geom2d.LineString
		flush := func() {
			if len(current) >= 2 {
				out = append(out, Arc{Origin: a.Origin, Radius: a.Radius, Path: current, Debug: a.Debug})
			}
			current = nil
		}
		for i, v := range a.Path {
			inside := mask.Contains(v)
			if inside {
				if len(current) == 0 && i > 0 && !mask.Contains(a.Path[i-1]) {
					current = append(current, crossingPoint(a.Path[i-1], v, mask))
				}
				current = append(current, v)
			} else {
				if len(current) > 0 {
					current = append(current, crossingPoint(a.Path[i-1], v, mask))
				}
				flush()
			}
		}
		flush()
	}
	return out
}

// crossingPoint bisects segment a->b (one endpoint inside mask, one
// outside) toward the polygon boundary.
func crossingPoint(a, b geom2d.Point, mask geom2d.Polygon) geom2d.Point {
	lo, hi := a, b
	loIn := mask.Contains(lo)
	for i := 0; i < 24; i++ {
		mid := lo.Lerp(hi, 0.5)
		if mask.Contains(mid) == loIn {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Lerp(hi, 0.5)
}

// measureProgress implements §4.2.e's two progress measures: against the
// previous full circle proposal when one exists, otherwise against the
// initial cut area.
func measureProgress(arcs []Arc, lastCircle *geom2d.Circle, area *cutArea) float64 {
	best := math.Inf(-1)
	if lastCircle != nil {
		for _, a := range arcs {
			p := a.Path.MaxDistanceToPoint(lastCircle.Center) - lastCircle.Radius
			if p > best {
				best = p
			}
		}
	} else {
		for _, a := range arcs {
			for _, v := range a.Path {
				if d := area.distance(v); d > best {
					best = d
				}
			}
		}
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}
