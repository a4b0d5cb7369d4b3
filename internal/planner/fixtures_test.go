package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

func arcsAndLines(path []PathElement) (arcs []Arc, lines []Line) {
	for _, el := range path {
		switch v := el.(type) {
		case Arc:
			arcs = append(arcs, v)
		case Line:
			lines = append(lines, v)
		}
	}
	return arcs, lines
}

// Scenario 1: unit square, step=0.25, CW, inside pocket.
func TestFixtureUnitSquare(t *testing.T) {
	square := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}}
	opts := DefaultPlanOptions(0.25, CW)
	opts.Timeslice = 0

	plan, progress, err := InsidePocket(square, opts)
	require.NoError(t, err)
	assert.Nil(t, progress)

	arcs, _ := arcsAndLines(plan.Path)
	require.NotEmpty(t, arcs)

	first := arcs[0]
	assert.InDelta(t, 0.5, first.Origin.X, 1e-6)
	assert.InDelta(t, 0.5, first.Origin.Y, 1e-6)
	assert.InDelta(t, 0.5, first.Radius, 1e-6)

	for _, a := range arcs {
		for _, v := range a.Path {
			assert.GreaterOrEqual(t, v.X, -1e-6)
			assert.LessOrEqual(t, v.X, 1+1e-6)
			assert.GreaterOrEqual(t, v.Y, -1e-6)
			assert.LessOrEqual(t, v.Y, 1+1e-6)
		}
	}
}

// Scenario 2: square with a circular hole, no arc may cross into the hole.
func TestFixtureSquareWithHole(t *testing.T) {
	square := geom2d.Polygon{
		Exterior: geom2d.LineString{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Holes:    []geom2d.LineString{geom2d.FullCircle(geom2d.Point{X: 5, Y: 5}, 1, 48)},
	}
	opts := DefaultPlanOptions(0.5, CW)

	plan, _, err := InsidePocket(square, opts)
	require.NoError(t, err)

	hole := geom2d.Circle{Center: geom2d.Point{X: 5, Y: 5}, Radius: 1}
	arcs, _ := arcsAndLines(plan.Path)
	for _, a := range arcs {
		for _, v := range a.Path {
			assert.GreaterOrEqual(t, hole.Center.Distance(v), hole.Radius-1e-6)
		}
	}
	assert.Equal(t, 0, plan.Diagnostics().PathFailCount)
}

// Scenario 3: thin rectangle triggers corner-zoom shrinkage but still
// produces a usable plan.
func TestFixtureThinRectangle(t *testing.T) {
	rect := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 0.8}, {X: 0, Y: 0.8},
	}}
	opts := DefaultPlanOptions(0.5, CW)

	plan, _, err := InsidePocket(rect, opts)
	require.NoError(t, err)

	arcs, _ := arcsAndLines(plan.Path)
	require.NotEmpty(t, arcs)

	small := 0
	for _, a := range arcs {
		if a.Radius < 1.0 {
			small++
		}
	}
	assert.Greater(t, small, 0)
}

// Scenario 4: outside pocket around a single square obstacle.
func TestFixtureOutsidePocket(t *testing.T) {
	material := geom2d.Polygon{Exterior: geom2d.LineString{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	obstacles := geom2d.MultiPolygon{{Exterior: geom2d.LineString{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}}}
	opts := DefaultPlanOptions(1.0, CCW)

	plan, _, err := OutsidePocket(obstacles, material, opts)
	require.NoError(t, err)

	_, lines := arcsAndLines(plan.Path)
	sawRapidOutside := false
	for _, l := range lines {
		if l.MoveStyle == RapidOutside {
			sawRapidOutside = true
		}
	}
	assert.True(t, sawRapidOutside)

	obstacle := obstacles[0]
	arcs, _ := arcsAndLines(plan.Path)
	for _, a := range arcs {
		for _, v := range a.Path {
			assert.False(t, obstacle.Contains(v))
		}
	}
}

// Scenario 5: L-shape with Closest winding, joins never rapid-outside.
func TestFixtureLShape(t *testing.T) {
	lshape := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 10}, {X: 0, Y: 10},
	}}
	opts := DefaultPlanOptions(0.4, Closest)

	plan, _, err := InsidePocket(lshape, opts)
	require.NoError(t, err)

	_, lines := arcsAndLines(plan.Path)
	for _, l := range lines {
		assert.NotEqual(t, RapidOutside, l.MoveStyle)
	}
}

// Scenario 6: degenerate pocket narrower than step/2 still terminates
// with at least one arc and no panic.
func TestFixtureDegeneratePocket(t *testing.T) {
	sliver := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0.05}, {X: 0, Y: 0.05},
	}}
	opts := DefaultPlanOptions(0.5, CW)

	assert.NotPanics(t, func() {
		plan, _, err := InsidePocket(sliver, opts)
		require.NoError(t, err)
		arcs, _ := arcsAndLines(plan.Path)
		assert.NotEmpty(t, arcs)
	})
}
