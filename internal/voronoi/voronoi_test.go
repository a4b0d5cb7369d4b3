package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

func square(side float64) geom2d.Polygon {
	return geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}}
}

func TestNewRejectsDegeneratePolygon(t *testing.T) {
	_, err := New(geom2d.Polygon{Exterior: geom2d.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}}}, DefaultOptions())
	require.Error(t, err)
	assert.True(t, IsInvalidGeometry(err))
}

func TestWidestGapOfSquareIsCenter(t *testing.T) {
	v, err := New(square(10), DefaultOptions())
	require.NoError(t, err)

	center, radius := v.WidestGap()
	assert.InDelta(t, 5, center.X, 0.6)
	assert.InDelta(t, 5, center.Y, 0.6)
	assert.InDelta(t, 5, radius, 0.6)
}

func TestDistanceFromGeomMatchesPolygonBoundary(t *testing.T) {
	v, err := New(square(10), DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 5, v.DistanceFromGeom(geom2d.Point{X: 5, Y: 5}), 1e-9)
}

func TestGraphHasVerticesAndEdges(t *testing.T) {
	v, err := New(square(10), DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, v.Vertices())
	assert.NotEmpty(t, v.Edges())

	for _, vertex := range v.Vertices() {
		edges, ok := v.VertexToEdges()[vertex]
		assert.True(t, ok)
		assert.NotEmpty(t, edges)
	}
}

func TestVertexOnPerimeterOnlyWhenRequested(t *testing.T) {
	without, err := New(square(10), Options{GridResolution: 32})
	require.NoError(t, err)
	_, found := without.VertexOnPerimeter()
	assert.False(t, found)

	with, err := New(square(10), Options{GridResolution: 32, PreserveEdge: true})
	require.NoError(t, err)
	_ = with // perimeter detection depends on grid alignment; just confirm no panic.
}

func TestThinRectangleSkeletonRunsAlongMidline(t *testing.T) {
	rect := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 0.8}, {X: 0, Y: 0.8},
	}}
	v, err := New(rect, Options{GridResolution: 64})
	require.NoError(t, err)

	_, radius := v.WidestGap()
	assert.InDelta(t, 0.4, radius, 0.15)
}
