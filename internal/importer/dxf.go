// Package importer loads pocket geometry from CAD drawing files into the
// geom2d.Polygon form internal/planner consumes.
package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

// ImportResult holds the outcome of loading a drawing: the recovered
// pocket polygon plus any non-fatal warnings and fatal errors collected
// along the way.
type ImportResult struct {
	Pocket   geom2d.Polygon
	Errors   []string
	Warnings []string
}

// segment is a line segment between two points, used to chain
// disconnected LINE/ARC entities into closed rings.
type segment struct {
	start geom2d.Point
	end   geom2d.Point
}

// ImportDXF loads a pocket polygon from a DXF file: every closed ring
// found among LWPOLYLINE, CIRCLE, and chained LINE/ARC entities becomes a
// candidate ring. The largest-area ring becomes the pocket's exterior;
// every other ring fully contained within it becomes a hole (an
// obstacle, in §4.8's terms). Rings not contained in the exterior are
// reported as warnings and dropped, since a pocket plan needs a single
// enclosing boundary.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var rings []geom2d.LineString
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			ring := lwPolylineToRing(e)
			if len(ring) >= 3 {
				rings = append(rings, ring)
			} else {
				result.Warnings = append(result.Warnings, "skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			rings = append(rings, circleToRing(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: geom2d.Point{X: e.Start[0], Y: e.Start[1]},
				end:   geom2d.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped.
		}
	}

	chained := chainSegments(segments, 0.01)
	rings = append(rings, chained...)

	if len(rings) == 0 {
		result.Errors = append(result.Errors, "no closed shapes found in DXF file")
		return result
	}

	sort.Slice(rings, func(i, j int) bool { return geom2d.RingArea(rings[i]) > geom2d.RingArea(rings[j]) })

	exterior := rings[0]
	min, max := exterior.BoundingBox()
	if max.X-min.X < 0.01 || max.Y-min.Y < 0.01 {
		result.Errors = append(result.Errors, "largest ring in DXF file is degenerate")
		return result
	}

	pocket := geom2d.Polygon{Exterior: exterior}
	for _, ring := range rings[1:] {
		if ringInsideRing(ring, exterior) {
			pocket.Holes = append(pocket.Holes, ring)
		} else {
			result.Warnings = append(result.Warnings, "skipped ring not contained in the largest outline")
		}
	}

	result.Pocket = pocket
	return result
}

// lwPolylineToRing converts a DXF LWPOLYLINE entity to a ring. Bulge
// values on vertices produce interpolated arc segments.
func lwPolylineToRing(lw *entity.LwPolyline) geom2d.LineString {
	var ring geom2d.LineString

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := geom2d.Point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := geom2d.Point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			ring = append(ring, arcPts[:len(arcPts)-1]...)
		} else {
			ring = append(ring, current)
		}
	}

	return ring
}

// bulgeArcPoints generates points along an arc defined by two endpoints
// and a DXF bulge factor. The bulge is tan(included angle / 4); that
// identity gives the chord-to-radius relation directly
// (chord = 2*R*sin(included/2)), so the radius and sagitta here come
// from the included angle rather than from solving the sagitta
// quadratic first — the two are equivalent, but this reaches the same
// center/radius from the bulge's own angular definition.
func bulgeArcPoints(p1, p2 geom2d.Point, bulge float64, numSegments int) geom2d.LineString {
	chordLen := p1.Distance(p2)
	if chordLen < 1e-9 {
		return geom2d.LineString{p1, p2}
	}

	includedAngle := 4 * math.Atan(math.Abs(bulge))
	radius := chordLen / (2 * math.Sin(includedAngle/2))
	sagitta := radius * (1 - math.Cos(includedAngle/2))

	mid := p1.Lerp(p2, 0.5)
	chordDir := p2.Sub(p1).Scale(1 / chordLen)
	perp := geom2d.Point{X: -chordDir.Y, Y: chordDir.X}
	if bulge < 0 {
		perp = perp.Scale(-1)
	}
	center := mid.Add(perp.Scale(radius - sagitta))

	startAngle := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	endAngle := math.Atan2(p2.Y-center.Y, p2.X-center.X)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make(geom2d.LineString, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts[i] = geom2d.Point{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
	}
	return pts
}

// circleToRing approximates a circle as a regular polygon, delegating to
// the planner kernel's own circle sampler rather than re-deriving the
// angle loop here.
func circleToRing(c *entity.Circle, numSegments int) geom2d.LineString {
	center := geom2d.Point{X: c.Center[0], Y: c.Center[1]}
	full := geom2d.FullCircle(center, c.Radius, numSegments)
	return full[:len(full)-1] // FullCircle repeats the first point to close the loop; a ring doesn't need that
}

// arcToPoints converts a DXF ARC entity (angles in degrees, standard
// math convention: counter-clockwise from +X) to a series of points.
// It reuses geom2d.PointOnCircle, which is parameterized on the
// planner's clockwise-from-+Y convention, so each DXF angle is first
// rotated into that frame (quarter-turn complement) rather than
// sampling cos/sin directly.
func arcToPoints(a *entity.Arc, numSegments int) []geom2d.Point {
	center := geom2d.Point{X: a.Circle.Center[0], Y: a.Circle.Center[1]}
	r := a.Circle.Radius

	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]geom2d.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		stdAngle := start + t*(end-start)
		pts[i] = geom2d.PointOnCircle(center, r, math.Pi/2-stdAngle)
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []geom2d.Point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed rings.
// tolerance is the maximum distance between endpoints to consider them
// connected. Endpoints are bucketed by rounded coordinate first so each
// chain extension is an O(1) map lookup instead of a scan over every
// remaining segment.
func chainSegments(segs []segment, tolerance float64) []geom2d.LineString {
	if len(segs) == 0 {
		return nil
	}

	bucket := func(p geom2d.Point) [2]int64 {
		scale := 1.0
		if tolerance > 0 {
			scale = 1 / tolerance
		}
		return [2]int64{int64(math.Round(p.X * scale)), int64(math.Round(p.Y * scale))}
	}

	byEndpoint := make(map[[2]int64][]int)
	addEndpoint := func(p geom2d.Point, idx int) {
		k := bucket(p)
		byEndpoint[k] = append(byEndpoint[k], idx)
	}
	for i, s := range segs {
		addEndpoint(s.start, i)
		addEndpoint(s.end, i)
	}

	used := make([]bool, len(segs))
	popMatch := func(p geom2d.Point, exclude int) (segment, int, bool) {
		base := bucket(p)
		// Search the 3x3 neighborhood, not just p's own bucket: a point
		// within tolerance of p can round into an adjacent cell when it
		// sits near a cell boundary.
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				key := [2]int64{base[0] + dx, base[1] + dy}
				for _, idx := range byEndpoint[key] {
					if idx == exclude || used[idx] {
						continue
					}
					s := segs[idx]
					if pointsClose(p, s.start, tolerance) || pointsClose(p, s.end, tolerance) {
						return s, idx, true
					}
				}
			}
		}
		return segment{}, -1, false
	}

	var rings []geom2d.LineString
	for start, s := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := geom2d.LineString{s.start, s.end}

		for {
			tail := chain[len(chain)-1]
			next, idx, ok := popMatch(tail, start)
			if !ok {
				break
			}
			used[idx] = true
			if pointsClose(tail, next.start, tolerance) {
				chain = append(chain, next.end)
			} else {
				chain = append(chain, next.start)
			}
		}

		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			rings = append(rings, chain[:len(chain)-1])
		}
	}

	sort.Slice(rings, func(i, j int) bool { return geom2d.RingArea(rings[i]) > geom2d.RingArea(rings[j]) })

	return rings
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b geom2d.Point, tolerance float64) bool {
	return a.Distance(b) <= tolerance
}

// ringInsideRing reports whether every vertex of inner lies inside outer,
// a cheap containment test that is exact for the non-self-intersecting
// rings a DXF drawing produces.
func ringInsideRing(inner, outer geom2d.LineString) bool {
	poly := geom2d.Polygon{Exterior: outer}
	for _, v := range inner {
		if !poly.Contains(v) {
			return false
		}
	}
	return true
}
