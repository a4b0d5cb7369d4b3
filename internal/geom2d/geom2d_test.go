package geom2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineStringLengthAndInterpolate(t *testing.T) {
	ls := LineString{{0, 0}, {10, 0}, {10, 10}}
	require.InDelta(t, 20, ls.Length(), 1e-9)

	mid := ls.Interpolate(10, false)
	assert.InDelta(t, 10, mid.X, 1e-9)
	assert.InDelta(t, 0, mid.Y, 1e-9)

	quarter := ls.Interpolate(0.25, true)
	assert.InDelta(t, 5, quarter.X, 1e-9)
}

func TestLineStringDedup(t *testing.T) {
	ls := LineString{{0, 0}, {0, 0}, {1, 0}, {1, 1e-9}, {2, 2}}
	deduped := ls.Dedup(1e-6)
	assert.Equal(t, LineString{{0, 0}, {1, 0}, {2, 2}}, deduped)
}

func TestAngleFromOriginConvention(t *testing.T) {
	origin := Point{0, 0}
	assert.InDelta(t, 0, AngleFromOrigin(origin, Point{0, 1}), 1e-9)
	assert.InDelta(t, math.Pi/2, AngleFromOrigin(origin, Point{1, 0}), 1e-9)
	assert.InDelta(t, math.Pi, AngleFromOrigin(origin, Point{0, -1}), 1e-9)
}

func TestPolygonContainsWithHole(t *testing.T) {
	square := Polygon{
		Exterior: LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Holes:    []LineString{{{4, 4}, {6, 4}, {6, 6}, {4, 6}}},
	}
	assert.True(t, square.Contains(Point{1, 1}))
	assert.False(t, square.Contains(Point{5, 5}))
	assert.False(t, square.Contains(Point{20, 20}))
}

func TestPolygonDistance(t *testing.T) {
	square := Polygon{Exterior: LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	assert.Equal(t, 0.0, square.Distance(Point{5, 5}))
	assert.InDelta(t, 5, square.Distance(Point{15, 5}), 1e-9)
	assert.InDelta(t, 5, square.DistanceToBoundary(Point{5, 5}), 1e-9)
}

func TestCircleCoveredAngleInterval(t *testing.T) {
	c := Circle{Center: Point{0, 0}, Radius: 5}
	other := Circle{Center: Point{0, 0}, Radius: 10}
	iv, ok := c.CoveredAngleInterval(other)
	require.True(t, ok)
	assert.InDelta(t, twoPi, iv.Span, 1e-9)

	disjoint := Circle{Center: Point{100, 100}, Radius: 1}
	_, ok = c.CoveredAngleInterval(disjoint)
	assert.False(t, ok)

	overlap := Circle{Center: Point{5, 0}, Radius: 5}
	iv, ok = c.CoveredAngleInterval(overlap)
	require.True(t, ok)
	assert.Greater(t, iv.Span, 0.0)
	assert.Less(t, iv.Span, twoPi)
}

func TestMergeAndComplementAngleIntervals(t *testing.T) {
	merged := MergeAngleIntervals([]AngleInterval{
		{Start: 0, Span: 1},
		{Start: 0.5, Span: 1},
		{Start: twoPi - 0.2, Span: 0.4},
	})
	require.Len(t, merged, 1)
	assert.InDelta(t, twoPi-0.2, merged[0].Start, 1e-9)

	gaps := ComplementAngleIntervals([]AngleInterval{{Start: 1, Span: 2}})
	require.Len(t, gaps, 1)
	assert.InDelta(t, 3, gaps[0].Start, 1e-9)
	assert.InDelta(t, twoPi-2, gaps[0].Span, 1e-9)
}

func TestRegionSetSegmentCoverage(t *testing.T) {
	rs := RegionSet{
		Disk{Center: Point{0, 0}, Radius: 2},
		Stadium{A: Point{5, 0}, B: Point{10, 0}, Radius: 1},
	}
	covered := rs.SegmentCoverage(Point{-5, 0}, Point{15, 0})
	require.NotEmpty(t, covered)

	uncovered := rs.Uncovered(Point{-5, 0}, Point{15, 0})
	require.NotEmpty(t, uncovered)
	// The gap between the disk (covers x=-2..2) and the
	// stadium (covers x=4..11) must show up as an uncovered interval.
	foundGap := false
	for _, iv := range uncovered {
		if iv.Hi-iv.Lo > 0.05 {
			foundGap = true
		}
	}
	assert.True(t, foundGap)
}

func TestStadiumContains(t *testing.T) {
	s := Stadium{A: Point{0, 0}, B: Point{10, 0}, Radius: 1}
	assert.True(t, s.Contains(Point{5, 0.5}))
	assert.True(t, s.Contains(Point{-0.5, 0}))
	assert.False(t, s.Contains(Point{5, 2}))
}
