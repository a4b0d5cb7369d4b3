// Package geom2d provides the 2D geometry primitives the planner needs:
// points, polylines, polygons with holes, and the point-containment,
// distance, and segment-splitting queries the arc fitter and joiner run
// against them. It deliberately does not implement a general polygon
// boolean/clipping engine; internal/planner keeps its cut areas as unions
// of disks and stadiums instead. Most queries here are closed-form;
// FullCircle approximates a circle by a polyline, and
// Polygon.SegmentNearOrInside tests only a segment's endpoints and
// midpoint.
package geom2d

import "math"

// Point is a 2D coordinate. Zero value is the origin.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Norm() }

// Equal reports whether p and q are within tol of each other.
func (p Point) Equal(q Point, tol float64) bool { return p.Distance(q) <= tol }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// RotateAbout rotates p by angle radians (counter-clockwise in standard
// X/Y math convention) about origin.
func (p Point) RotateAbout(origin Point, angle float64) Point {
	d := p.Sub(origin)
	sin, cos := math.Sincos(angle)
	return Point{
		X: origin.X + d.X*cos - d.Y*sin,
		Y: origin.Y + d.X*sin + d.Y*cos,
	}
}

// AngleFromOrigin returns the angle of p as seen from origin using the
// convention the planner's arc bookkeeping relies on throughout: angle 0
// points along +Y, and positive angle is clockwise. This is atan2 with
// the arguments swapped from the usual math convention, i.e.
// atan2(dx, dy) rather than atan2(dy, dx).
func AngleFromOrigin(origin, p Point) float64 {
	d := p.Sub(origin)
	return math.Atan2(d.X, d.Y)
}

// PointOnCircle returns the point at the given angle (clockwise-positive
// from +Y, see AngleFromOrigin) on the circle centered at center with the
// given radius.
func PointOnCircle(center Point, radius, angle float64) Point {
	return Point{
		X: center.X + radius*math.Sin(angle),
		Y: center.Y + radius*math.Cos(angle),
	}
}

const twoPi = 2 * math.Pi

// NormalizeAngle reduces a into (-2*pi, 2*pi]; the caller is responsible
// for any further mod-2pi reduction a particular formula requires (§4.6
// of the planner spec folds this differently for start/span angles than
// for plain bookkeeping, so this helper stays minimal).
func NormalizeAngle(a float64) float64 {
	for a <= -twoPi {
		a += twoPi
	}
	for a > twoPi {
		a -= twoPi
	}
	return a
}

// ModTwoPi reduces a into [0, 2*pi).
func ModTwoPi(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
