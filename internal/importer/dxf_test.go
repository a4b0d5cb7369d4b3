package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

func TestChainSegmentsClosesASquare(t *testing.T) {
	segs := []segment{
		{start: geom2d.Point{X: 0, Y: 0}, end: geom2d.Point{X: 10, Y: 0}},
		{start: geom2d.Point{X: 10, Y: 10}, end: geom2d.Point{X: 10, Y: 0}},
		{start: geom2d.Point{X: 10, Y: 10}, end: geom2d.Point{X: 0, Y: 10}},
		{start: geom2d.Point{X: 0, Y: 10}, end: geom2d.Point{X: 0, Y: 0}},
	}

	rings := chainSegments(segs, 0.01)
	assert.Len(t, rings, 1)
	assert.Len(t, rings[0], 4)
}

func TestChainSegmentsDropsOpenChain(t *testing.T) {
	segs := []segment{
		{start: geom2d.Point{X: 0, Y: 0}, end: geom2d.Point{X: 10, Y: 0}},
		{start: geom2d.Point{X: 10, Y: 0}, end: geom2d.Point{X: 10, Y: 10}},
	}

	assert.Empty(t, chainSegments(segs, 0.01))
}

func TestRingInsideRing(t *testing.T) {
	outer := geom2d.LineString{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	inner := geom2d.LineString{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}
	outside := geom2d.LineString{{X: 20, Y: 20}, {X: 22, Y: 20}, {X: 22, Y: 22}}

	assert.True(t, ringInsideRing(inner, outer))
	assert.False(t, ringInsideRing(outside, outer))
}

func TestRingArea(t *testing.T) {
	square := geom2d.LineString{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 100.0, geom2d.RingArea(square), 1e-9)
}

func TestBulgeArcPointsStartsAndEndsAtGivenPoints(t *testing.T) {
	p1 := geom2d.Point{X: 0, Y: 0}
	p2 := geom2d.Point{X: 2, Y: 0}
	pts := bulgeArcPoints(p1, p2, 1.0, 16) // bulge 1.0 is a semicircle

	assert.InDelta(t, p1.X, pts[0].X, 1e-6)
	assert.InDelta(t, p1.Y, pts[0].Y, 1e-6)
	assert.InDelta(t, p2.X, pts[len(pts)-1].X, 1e-6)
	assert.InDelta(t, p2.Y, pts[len(pts)-1].Y, 1e-6)
}

func TestImportDXFReportsMissingFile(t *testing.T) {
	result := ImportDXF("testdata/does-not-exist.dxf")
	assert.NotEmpty(t, result.Errors)
}
