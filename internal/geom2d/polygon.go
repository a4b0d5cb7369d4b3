package geom2d

import "math"

// Polygon is a simple polygon: one exterior ring plus zero or more
// interior (hole) rings. Rings are not required to be explicitly closed
// (first point need not repeat as the last).
type Polygon struct {
	Exterior LineString
	Holes    []LineString
}

// MultiPolygon is an ordered collection of polygons. cut_area (§4.3) is
// represented this way once it stops being coverable by a single ring.
type MultiPolygon []Polygon

// Rings returns every ring (exterior then holes) of the polygon.
func (p Polygon) Rings() []LineString {
	out := make([]LineString, 0, 1+len(p.Holes))
	out = append(out, p.Exterior)
	out = append(out, p.Holes...)
	return out
}

// BoundingBox returns the polygon's axis-aligned bounds from its exterior ring.
func (p Polygon) BoundingBox() (min, max Point) {
	return p.Exterior.BoundingBox()
}

// Area returns the unsigned area of the exterior ring minus its holes,
// via the shoelace formula.
func (p Polygon) Area() float64 {
	a := ringArea(p.Exterior)
	for _, h := range p.Holes {
		a -= ringArea(h)
	}
	if a < 0 {
		return -a
	}
	return a
}

func ringArea(ring LineString) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return area / 2
}

// RingArea returns the unsigned area of a single ring via the shoelace
// formula, exported so callers outside the package (the DXF importer
// ranking candidate rings by size) don't need their own copy of the
// same sum.
func RingArea(ring LineString) float64 {
	a := ringArea(ring)
	if a < 0 {
		return -a
	}
	return a
}

// ringContains reports whether p is inside ring via the standard even-odd
// ray-casting test. Ring need not be explicitly closed.
func ringContains(ring LineString, p Point) bool {
	n := len(ring)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// Contains reports whether p lies inside the polygon's exterior and
// outside every hole.
func (p Polygon) Contains(pt Point) bool {
	if !ringContains(p.Exterior, pt) {
		return false
	}
	for _, h := range p.Holes {
		if ringContains(h, pt) {
			return false
		}
	}
	return true
}

// Contains reports whether pt is inside any polygon of mp.
func (mp MultiPolygon) Contains(pt Point) bool {
	for _, p := range mp {
		if p.Contains(pt) {
			return true
		}
	}
	return false
}

// DistanceToBoundary returns the minimum distance from p to any edge of
// any ring of the polygon (exterior or holes), regardless of whether p is
// inside or outside. This is the "distance to nearest pocket edge" query
// the medial-axis adapter's distance_from_geom uses (§6) — it is always a
// positive edge distance, never zero-if-inside.
func (p Polygon) DistanceToBoundary(pt Point) float64 {
	best := math.Inf(1)
	for _, ring := range p.Rings() {
		if d := closedRingDistance(ring, pt); d < best {
			best = d
		}
	}
	return best
}

func closedRingDistance(ring LineString, pt Point) float64 {
	n := len(ring)
	if n == 0 {
		return math.Inf(1)
	}
	if n == 1 {
		return ring[0].Distance(pt)
	}
	best := math.Inf(1)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if d := distancePointToSegment(pt, a, b); d < best {
			best = d
		}
	}
	return best
}

// Distance returns the shapely-style area distance from p to the polygon:
// zero if p is inside (accounting for holes), otherwise the distance to
// the nearest boundary edge.
func (p Polygon) Distance(pt Point) float64 {
	if p.Contains(pt) {
		return 0
	}
	return p.DistanceToBoundary(pt)
}

// Distance returns the shapely-style area distance from p to mp: zero if
// p is inside any polygon, else the minimum boundary distance across all
// polygons.
func (mp MultiPolygon) Distance(pt Point) float64 {
	if mp.Contains(pt) {
		return 0
	}
	best := math.Inf(1)
	for _, p := range mp {
		if d := p.DistanceToBoundary(pt); d < best {
			best = d
		}
	}
	return best
}

// NearOrInside reports whether pt is inside the polygon or within tol of
// its boundary — the "covered by polygon.buffer(tol)" test the joiner
// uses (§4.7) without materializing a buffered polygon.
func (p Polygon) NearOrInside(pt Point, tol float64) bool {
	if p.Contains(pt) {
		return true
	}
	return p.DistanceToBoundary(pt) <= tol
}

// SegmentNearOrInside reports whether the segment a-b is covered by
// polygon.buffer(tol), approximated (as real CAM planners do for a short
// connector) by sampling the endpoints and midpoint.
func (p Polygon) SegmentNearOrInside(a, b Point, tol float64) bool {
	mid := a.Lerp(b, 0.5)
	return p.NearOrInside(a, tol) && p.NearOrInside(mid, tol) && p.NearOrInside(b, tol)
}
