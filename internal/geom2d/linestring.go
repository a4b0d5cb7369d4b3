package geom2d

import "math"

// LineString is an ordered sequence of >=2 points. An empty or
// single-point LineString is considered degenerate by every method here.
type LineString []Point

// IsEmpty reports whether the line string has fewer than 2 points.
func (ls LineString) IsEmpty() bool { return len(ls) < 2 }

// Dedup returns ls with consecutive duplicate points (within tol)
// collapsed. The caller (spine walker, §4.1) treats a result with fewer
// than 2 distinct points as "no work here".
func (ls LineString) Dedup(tol float64) LineString {
	if len(ls) == 0 {
		return nil
	}
	out := make(LineString, 0, len(ls))
	out = append(out, ls[0])
	for _, p := range ls[1:] {
		if !p.Equal(out[len(out)-1], tol) {
			out = append(out, p)
		}
	}
	return out
}

// Reverse returns ls with its point order reversed.
func (ls LineString) Reverse() LineString {
	out := make(LineString, len(ls))
	for i, p := range ls {
		out[len(out)-1-i] = p
	}
	return out
}

// Length returns the total length of ls as a polyline.
func (ls LineString) Length() float64 {
	var total float64
	for i := 1; i < len(ls); i++ {
		total += ls[i-1].Distance(ls[i])
	}
	return total
}

// Interpolate returns the point a distance d along ls. If normalized is
// true, d is a fraction of the total length in [0,1]; otherwise d is an
// absolute distance, clamped to [0, Length()].
func (ls LineString) Interpolate(d float64, normalized bool) Point {
	if ls.IsEmpty() {
		return Point{}
	}
	total := ls.Length()
	if normalized {
		d = d * total
	}
	if d <= 0 {
		return ls[0]
	}
	if d >= total {
		return ls[len(ls)-1]
	}
	var consumed float64
	for i := 1; i < len(ls); i++ {
		seg := ls[i-1].Distance(ls[i])
		if consumed+seg >= d {
			t := 0.0
			if seg > 0 {
				t = (d - consumed) / seg
			}
			return ls[i-1].Lerp(ls[i], t)
		}
		consumed += seg
	}
	return ls[len(ls)-1]
}

// Extrapolate extends ls by offset on both ends, continuing along the
// direction of the first and last segments respectively. Used by the arc
// fitter (§4.2 step 1) so controller overshoot during the numerical
// search always lands on a valid line.
func (ls LineString) Extrapolate(offset float64) LineString {
	if len(ls) < 2 {
		return ls
	}
	first := ls[0]
	second := ls[1]
	dirStart := unit(first.Sub(second))
	startPt := first.Add(dirStart.Scale(offset))

	last := ls[len(ls)-1]
	secondLast := ls[len(ls)-2]
	dirEnd := unit(last.Sub(secondLast))
	endPt := last.Add(dirEnd.Scale(offset))

	out := make(LineString, 0, len(ls)+2)
	out = append(out, startPt)
	out = append(out, ls...)
	out = append(out, endPt)
	return out
}

func unit(v Point) Point {
	n := v.Norm()
	if n == 0 {
		return Point{}
	}
	return v.Scale(1 / n)
}

// DistanceToPoint returns the minimum distance from p to any point on ls.
func (ls LineString) DistanceToPoint(p Point) float64 {
	if ls.IsEmpty() {
		if len(ls) == 1 {
			return ls[0].Distance(p)
		}
		return math.Inf(1)
	}
	best := math.Inf(1)
	for i := 1; i < len(ls); i++ {
		d := distancePointToSegment(p, ls[i-1], ls[i])
		if d < best {
			best = d
		}
	}
	return best
}

// distancePointToSegment returns the shortest distance from p to segment ab.
func distancePointToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return p.Distance(proj)
}

// MaxDistanceToPoint returns the maximum distance from p to any vertex of
// ls. Combined with DistanceToPoint this gives the (undirected) Hausdorff
// distance between a single point and a polyline: per the definition of
// Hausdorff distance, sup_{b in B} inf_{a in {p}} d(a,b) is exactly this
// maximum, and it dominates the reverse (trivial, single-point) direction,
// so it equals hausdorff_distance(Point(p), ls) as most geometry libraries
// compute it (vertex-sampled, per §6).
func (ls LineString) MaxDistanceToPoint(p Point) float64 {
	best := 0.0
	for _, v := range ls {
		if d := p.Distance(v); d > best {
			best = d
		}
	}
	return best
}

// BoundingBox returns the axis-aligned min/max corners of ls.
func (ls LineString) BoundingBox() (min, max Point) {
	if len(ls) == 0 {
		return Point{}, Point{}
	}
	min, max = ls[0], ls[0]
	for _, p := range ls[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// FullCircle returns a closed LineString approximating a circle, with
// segments vertices plus a closing point equal to the first. Points run
// clockwise starting at angle 0 (straight up from center, see
// AngleFromOrigin), matching the planner's winding convention.
func FullCircle(center Point, radius float64, segments int) LineString {
	if segments < 3 {
		segments = 3
	}
	out := make(LineString, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := twoPi * float64(i) / float64(segments)
		out = append(out, PointOnCircle(center, radius, angle))
	}
	return out
}
