// Package planner implements the HSM peeling toolpath planner: the
// medial-axis spine walk, the tangent-arc fitter, cut-area bookkeeping,
// the arc-queue FIFO scheduler, and the winding/joiner logic that turns
// a pocket polygon into an ordered sequence of cutting moves.
package planner

import "github.com/piwi3910/hsmpeel/internal/geom2d"

// Winding is the rotational direction requested for emitted arcs.
type Winding int

const (
	// CW winds every arc clockwise.
	CW Winding = iota
	// CCW winds every arc counter-clockwise.
	CCW
	// Closest alternates winding relative to the previously emitted arc,
	// starting CW (§4.6).
	Closest
)

func (w Winding) String() string {
	switch w {
	case CW:
		return "CW"
	case CCW:
		return "CCW"
	case Closest:
		return "Closest"
	default:
		return "Winding(?)"
	}
}

// MoveStyle classifies a connector Line (§4.7).
type MoveStyle int

const (
	// RapidOutside is a fast traverse that may leave the pocket.
	RapidOutside MoveStyle = iota
	// RapidInside is a fast traverse confined to already-swept material.
	RapidInside
	// Cut is a connector that re-engages virgin material.
	Cut
)

func (m MoveStyle) String() string {
	switch m {
	case RapidOutside:
		return "RAPID_OUTSIDE"
	case RapidInside:
		return "RAPID_INSIDE"
	case Cut:
		return "CUT"
	default:
		return "MoveStyle(?)"
	}
}

// PathElement is a tagged union of Arc | Line (§3). The marker method is
// unexported so no other package can add a third variant.
type PathElement interface {
	isPathElement()
}

// Arc is one tangent-arc cutting move (§3). Radius and Origin are set as
// soon as a fragment is proposed; Start/End/StartAngle/SpanAngle/Winding
// are only valid once HasAngles is true, which completeArc guarantees
// before an Arc reaches the output path.
type Arc struct {
	Origin     geom2d.Point
	Radius     float64
	Start, End geom2d.Point
	HasAngles  bool
	StartAngle float64
	SpanAngle  float64
	Winding    Winding
	Path       geom2d.LineString
	// Debug tags a non-fatal condition that produced this arc: "red" for
	// corner-zoom step shrinkage, "orange" for an unconverged fitter
	// result (§7). Empty for an ordinary converged arc.
	Debug string
}

func (Arc) isPathElement() {}

// Line is one connector move between arcs (§3, §4.7).
type Line struct {
	Start, End geom2d.Point
	Path       geom2d.LineString
	MoveStyle  MoveStyle
}

func (Line) isPathElement() {}
