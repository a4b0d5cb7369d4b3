package geom2d

import "math"

// Region is anything that can report which portion of a straight segment
// it covers. cut_area_swept (§4.3) is a slice of Regions rather than a
// merged polygon: every consumer only ever asks "which part of this
// connector segment is already swept", so no consumer needs an explicit
// merged boundary.
type Region interface {
	// SegmentCoverage returns the parameter sub-intervals of [0,1] along
	// segment a->b that lie inside the region.
	SegmentCoverage(a, b Point) []Interval
	// Contains reports whether pt lies inside the region.
	Contains(pt Point) bool
}

// segmentCoverageDisk intersects segment a->b against a disk of the given
// center/radius, returning the covered parameter interval (0, 1, or the
// whole segment).
func segmentCoverageDisk(a, b, center Point, radius float64) []Interval {
	d := b.Sub(a)
	f := a.Sub(center)

	aCoef := d.Dot(d)
	if aCoef == 0 {
		if f.Norm() <= radius {
			return []Interval{{0, 1}}
		}
		return nil
	}
	bCoef := 2 * f.Dot(d)
	cCoef := f.Dot(f) - radius*radius

	disc := bCoef*bCoef - 4*aCoef*cCoef
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t1 := (-bCoef - sq) / (2 * aCoef)
	t2 := (-bCoef + sq) / (2 * aCoef)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t2 < 0 || t1 > 1 {
		return nil
	}
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	if t1 >= t2 {
		return nil
	}
	return []Interval{{t1, t2}}
}

// Disk is a filled circle region. cut_area (§4.3) is built from these:
// every accepted tangent circle proposal is added as one more Disk.
type Disk struct {
	Center Point
	Radius float64
}

func (d Disk) Contains(pt Point) bool { return d.Center.Distance(pt) <= d.Radius }

func (d Disk) SegmentCoverage(a, b Point) []Interval {
	return segmentCoverageDisk(a, b, d.Center, d.Radius)
}

// Stadium is a single line segment buffered by radius: a rectangle plus
// two round end caps. A buffered polyline (arc.path.buffer(step/2) in
// §4.7) is represented as one Stadium per consecutive vertex pair; their
// union reproduces the round-jointed buffer of the whole polyline without
// ever constructing an explicit offset polygon.
type Stadium struct {
	A, B   Point
	Radius float64
}

func (s Stadium) Contains(pt Point) bool {
	return distancePointToSegment(pt, s.A, s.B) <= s.Radius
}

// SegmentCoverage intersects segment a->b against the stadium by taking
// the union of: the two end-cap disks, and the core rectangle (as two
// half-plane constraints offset by radius from the spine A-B, clipped
// between the spine's own endpoints extended by radius along its axis —
// equivalent to sampling the signed distance to the infinite spine line
// and to the spine's projection range).
func (s Stadium) SegmentCoverage(a, b Point) []Interval {
	var out []Interval
	out = append(out, segmentCoverageDisk(a, b, s.A, s.Radius)...)
	out = append(out, segmentCoverageDisk(a, b, s.B, s.Radius)...)
	out = append(out, segmentCoverageRect(a, b, s.A, s.B, s.Radius)...)
	return MergeIntervals(out)
}

// segmentCoverageRect intersects segment p->q against the oriented
// rectangle of half-width radius running along spine u->v (the core of a
// stadium, excluding its round caps), via Liang-Barsky style clipping in
// the spine's local coordinate frame.
func segmentCoverageRect(p, q, u, v Point, radius float64) []Interval {
	axis := v.Sub(u)
	length := axis.Norm()
	if length == 0 {
		return nil
	}
	ax := axis.Scale(1 / length)    // unit along spine
	ay := Point{-ax.Y, ax.X}        // unit perpendicular

	toLocal := func(pt Point) Point {
		d := pt.Sub(u)
		return Point{X: d.Dot(ax), Y: d.Dot(ay)}
	}
	lp, lq := toLocal(p), toLocal(q)

	// Clip segment (lp -> lq) against the box [0,length] x [-radius,radius].
	t0, t1 := 0.0, 1.0
	dx := lq.X - lp.X
	dy := lq.Y - lp.Y
	clip := func(pCoef, qCoef float64) bool {
		if pCoef == 0 {
			return qCoef >= 0
		}
		r := qCoef / pCoef
		if pCoef < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}
	if !clip(-dx, lp.X-0) {
		return nil
	}
	if !clip(dx, length-lp.X) {
		return nil
	}
	if !clip(-dy, lp.Y+radius) {
		return nil
	}
	if !clip(dy, radius-lp.Y) {
		return nil
	}
	if t0 >= t1 {
		return nil
	}
	return []Interval{{t0, t1}}
}

// RegionSet is a union of Regions, used for cut_area_swept and the
// joiner's "already cleared" test (§4.7).
type RegionSet []Region

func (rs RegionSet) Contains(pt Point) bool {
	for _, r := range rs {
		if r.Contains(pt) {
			return true
		}
	}
	return false
}

// SegmentCoverage returns the merged union of parameter intervals along
// a->b covered by any region in the set.
func (rs RegionSet) SegmentCoverage(a, b Point) []Interval {
	var all []Interval
	for _, r := range rs {
		all = append(all, r.SegmentCoverage(a, b)...)
	}
	return MergeIntervals(all)
}

// Uncovered returns the complement of SegmentCoverage over [0,1]: the
// portions of a->b not yet swept.
func (rs RegionSet) Uncovered(a, b Point) []Interval {
	return ComplementIntervals(rs.SegmentCoverage(a, b))
}
