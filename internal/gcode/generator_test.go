package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
	"github.com/piwi3910/hsmpeel/internal/planner"
)

func defaultSettings() Settings {
	return Settings{
		ToolDiameter: 6, FeedRate: 1500, PlungeRate: 400,
		SpindleSpeed: 18000, SafeZ: 5, CutDepth: 6, PassDepth: 3,
		Profile: "Grbl",
	}
}

func samplePlan() *planner.Plan {
	square := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}}
	opts := planner.DefaultPlanOptions(1.0, planner.CW)
	opts.Timeslice = 0
	plan, _, err := planner.InsidePocket(square, opts)
	if err != nil {
		panic(err)
	}
	return plan
}

func TestGenerateEmitsOnePassPerDepthIncrement(t *testing.T) {
	g := New(defaultSettings())
	out := g.Generate(samplePlan())

	require.Equal(t, 2, strings.Count(out, "Pass "))
	assert.Contains(t, out, "G2")
	assert.Contains(t, out, "M3 S18000")
	assert.Contains(t, out, "M5")
}

func TestGenerateUsesCCWArcCommandForCCWWinding(t *testing.T) {
	square := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}}
	opts := planner.DefaultPlanOptions(1.0, planner.CCW)
	opts.Timeslice = 0
	plan, _, err := planner.InsidePocket(square, opts)
	require.NoError(t, err)

	g := New(defaultSettings())
	out := g.Generate(plan)
	assert.Contains(t, out, "G3")
}

func TestGenerateRoundTripsThroughParser(t *testing.T) {
	g := New(defaultSettings())
	out := g.Generate(samplePlan())

	moves := Parse(out)
	require.NotEmpty(t, moves)

	sawArc := false
	for _, m := range moves {
		if m.Type == MoveCWArc || m.Type == MoveCCWArc {
			sawArc = true
		}
	}
	assert.True(t, sawArc)
}
