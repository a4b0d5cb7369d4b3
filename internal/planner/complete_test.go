package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

func halfCircleArc(origin geom2d.Point, radius float64) Arc {
	path := geom2d.LineString{}
	for i := 0; i <= 8; i++ {
		angle := math.Pi * float64(i) / 8
		path = append(path, geom2d.PointOnCircle(origin, radius, angle))
	}
	return Arc{Origin: origin, Radius: radius, Path: path}
}

func TestCompleteArcInvariants(t *testing.T) {
	raw := halfCircleArc(geom2d.Point{X: 0, Y: 0}, 2)
	a := completeArc(raw, CW, CW, false)

	require.True(t, a.HasAngles)
	assert.Greater(t, a.SpanAngle, 0.0)
	assert.LessOrEqual(t, a.SpanAngle, 2*math.Pi)
	assert.InDelta(t, a.Radius, a.Origin.Distance(a.Path[0]), 1e-6)
}

func TestCompleteArcSpanSignMatchesWinding(t *testing.T) {
	raw := halfCircleArc(geom2d.Point{X: 0, Y: 0}, 2)

	cw := completeArc(raw, CW, CW, false)
	assert.Greater(t, cw.SpanAngle, 0.0)
	assert.Equal(t, CW, cw.Winding)

	ccw := completeArc(raw, CCW, CW, false)
	assert.Less(t, ccw.SpanAngle, 0.0)
	assert.Equal(t, CCW, ccw.Winding)
}

func TestCompleteArcClosestAlternatesWinding(t *testing.T) {
	raw := halfCircleArc(geom2d.Point{X: 0, Y: 0}, 2)

	first := completeArc(raw, Closest, CW, false)
	assert.Equal(t, CW, first.Winding)

	second := completeArc(raw, Closest, first.Winding, true)
	assert.Equal(t, CCW, second.Winding)

	third := completeArc(raw, Closest, second.Winding, true)
	assert.Equal(t, CW, third.Winding)
}

func TestCompleteArcIsIdempotent(t *testing.T) {
	raw := halfCircleArc(geom2d.Point{X: 1, Y: 1}, 3)
	once := completeArc(raw, CW, CW, false)
	twice := completeArc(once, CW, CW, false)

	assert.Equal(t, once.Start, twice.Start)
	assert.Equal(t, once.End, twice.End)
	assert.InDelta(t, once.SpanAngle, twice.SpanAngle, 1e-9)
	assert.Equal(t, once.Winding, twice.Winding)
}
