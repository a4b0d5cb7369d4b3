// Package voronoi is the medial-axis adapter the planner spec (§6)
// assumes is provided as an external service: "the raw Voronoi
// computation... assumed provided as a medial-axis service". No pack
// dependency computes one, so this package is a self-contained,
// grid-based skeleton extractor (grassfire/erosion-style ridge
// detection over a sampled distance field) sufficient to exercise the
// full VoronoiCenters surface — it is not meant to be a
// production-grade Voronoi/Delaunay implementation; see DESIGN.md.
package voronoi

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
)

// EdgeID identifies one medial-axis edge. Edge identity is never used to
// order traversal (the spine walker always breaks ties on geometry), so
// a randomly generated UUID does not threaten the planner's
// run-to-run determinism.
type EdgeID = uuid.UUID

// Options mirrors the VoronoiCenters(polygon, preserve_widest,
// preserve_edge) constructor from spec.md §6.
type Options struct {
	PreserveWidest bool
	PreserveEdge   bool
	// GridResolution controls how many cells span the longer side of the
	// polygon's bounding box. Higher values produce a finer medial axis
	// at higher construction cost. Zero selects a sane default.
	GridResolution int
}

// DefaultOptions returns the Options used when none are supplied.
func DefaultOptions() Options {
	return Options{PreserveWidest: false, PreserveEdge: false, GridResolution: 48}
}

// VoronoiCenters is the read-only façade over the medial graph the
// planner traverses. It exposes exactly the surface spec.md §6 names:
// Edges, VertexToEdges, MaxDist, DistanceFromGeom, WidestGap and
// VertexOnPerimeter.
type VoronoiCenters struct {
	Polygon geom2d.Polygon

	edges         map[EdgeID]geom2d.LineString
	vertexToEdges map[geom2d.Point][]EdgeID
	vertices      []geom2d.Point
	maxDist       float64

	widestGapPoint  geom2d.Point
	widestGapRadius float64

	perimeterVertex    geom2d.Point
	hasPerimeterVertex bool
}

// New builds the medial axis of polygon. It returns an error only when
// the polygon is degenerate (InvalidGeometry, §7): fewer than 3 exterior
// vertices, or a zero-area bounding box.
func New(polygon geom2d.Polygon, opts Options) (*VoronoiCenters, error) {
	if len(polygon.Exterior) < 3 {
		return nil, errInvalidGeometry("exterior ring needs at least 3 vertices")
	}
	min, max := polygon.BoundingBox()
	if max.X-min.X <= 0 || max.Y-min.Y <= 0 {
		return nil, errInvalidGeometry("degenerate bounding box")
	}
	if opts.GridResolution <= 0 {
		opts.GridResolution = DefaultOptions().GridResolution
	}

	v := &VoronoiCenters{Polygon: polygon}
	v.build(opts)
	return v, nil
}

// Edges returns every medial-axis edge, indexed by EdgeID.
func (v *VoronoiCenters) Edges() map[EdgeID]geom2d.LineString { return v.edges }

// VertexToEdges returns, for every medial-axis vertex, the set of edge
// IDs incident to it.
func (v *VoronoiCenters) VertexToEdges() map[geom2d.Point][]EdgeID { return v.vertexToEdges }

// Vertices returns every medial-axis vertex.
func (v *VoronoiCenters) Vertices() []geom2d.Point { return v.vertices }

// MaxDist is a loose upper bound on any distance within the domain: the
// diagonal of the polygon's bounding box.
func (v *VoronoiCenters) MaxDist() float64 { return v.maxDist }

// DistanceFromGeom returns the distance from p to the nearest pocket
// edge (point-to-boundary, not point-to-area).
func (v *VoronoiCenters) DistanceFromGeom(p geom2d.Point) float64 {
	return v.Polygon.DistanceToBoundary(p)
}

// WidestGap returns the center and radius of the largest circle that
// fits inside the polygon, used to seed InsidePocket (§4.8).
func (v *VoronoiCenters) WidestGap() (geom2d.Point, float64) {
	return v.widestGapPoint, v.widestGapRadius
}

// VertexOnPerimeter returns a medial-axis vertex lying on (or very near)
// the polygon's own boundary, when preserve_edge kept one. Used to seed
// OutsidePocket (§4.8), which walks the padded working polygon rather
// than cutting a full ring first.
func (v *VoronoiCenters) VertexOnPerimeter() (geom2d.Point, bool) {
	return v.perimeterVertex, v.hasPerimeterVertex
}

type invalidGeometryError struct{ msg string }

func (e invalidGeometryError) Error() string { return "invalid geometry: " + e.msg }

func errInvalidGeometry(msg string) error { return invalidGeometryError{msg} }

// IsInvalidGeometry reports whether err is the InvalidGeometry error
// kind from spec.md §7.
func IsInvalidGeometry(err error) bool {
	_, ok := err.(invalidGeometryError)
	return ok
}

// --- construction -----------------------------------------------------

type gridPoint struct{ i, j int }

func (v *VoronoiCenters) build(opts Options) {
	min, max := v.Polygon.BoundingBox()
	w, h := max.X-min.X, max.Y-min.Y
	longest := math.Max(w, h)
	cell := longest / float64(opts.GridResolution)
	if cell <= 0 {
		cell = 1e-6
	}
	nx := int(w/cell) + 4
	ny := int(h/cell) + 4

	origin := geom2d.Point{X: min.X - cell, Y: min.Y - cell}

	dist := make([][]float64, nx+1)
	for i := range dist {
		dist[i] = make([]float64, ny+1)
		for j := range dist[i] {
			dist[i][j] = -1
		}
	}

	at := func(i, j int) geom2d.Point {
		return geom2d.Point{X: origin.X + cell*float64(i), Y: origin.Y + cell*float64(j)}
	}

	v.maxDist = math.Hypot(w, h)
	bestR := -1.0
	var bestPt geom2d.Point
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			p := at(i, j)
			if !v.Polygon.Contains(p) {
				continue
			}
			d := v.Polygon.DistanceToBoundary(p)
			dist[i][j] = d
			if d > bestR {
				bestR = d
				bestPt = p
			}
		}
	}
	if bestR < 0 {
		bestR = 0
	}
	v.widestGapPoint = bestPt
	v.widestGapRadius = bestR

	eps := cell * 0.01
	isRidge := make(map[gridPoint]bool)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			d := dist[i][j]
			if d < 0 {
				continue
			}
			ridgeH := dist[i-1][j] >= 0 && dist[i+1][j] >= 0 &&
				d >= dist[i-1][j]-eps && d >= dist[i+1][j]-eps
			ridgeV := dist[i][j-1] >= 0 && dist[i][j+1] >= 0 &&
				d >= dist[i][j-1]-eps && d >= dist[i][j+1]-eps
			if ridgeH || ridgeV {
				isRidge[gridPoint{i, j}] = true
			}
		}
	}
	// Always keep the widest-gap cell itself, even for a pocket too small
	// or too irregular for any grid cell to register as a ridge (§8
	// scenario 6, the degenerate pocket).
	bestIdx := gridPoint{int(math.Round((bestPt.X - origin.X) / cell)), int(math.Round((bestPt.Y - origin.Y) / cell))}
	isRidge[bestIdx] = true

	v.edges = make(map[EdgeID]geom2d.LineString)
	v.vertexToEdges = make(map[geom2d.Point][]EdgeID)
	seen := make(map[[2]gridPoint]bool)

	var ridgePoints []gridPoint
	for gp := range isRidge {
		ridgePoints = append(ridgePoints, gp)
	}
	sort.Slice(ridgePoints, func(a, b int) bool {
		if ridgePoints[a].i != ridgePoints[b].i {
			return ridgePoints[a].i < ridgePoints[b].i
		}
		return ridgePoints[a].j < ridgePoints[b].j
	})

	neighborOffsets := [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, gp := range ridgePoints {
		for _, off := range neighborOffsets {
			np := gridPoint{gp.i + off[0], gp.j + off[1]}
			if !isRidge[np] {
				continue
			}
			key := [2]gridPoint{gp, np}
			if seen[key] {
				continue
			}
			seen[key] = true

			a, b := at(gp.i, gp.j), at(np.i, np.j)
			id := uuid.New()
			v.edges[id] = geom2d.LineString{a, b}
			v.vertexToEdges[a] = append(v.vertexToEdges[a], id)
			v.vertexToEdges[b] = append(v.vertexToEdges[b], id)
		}
	}

	v.vertices = make([]geom2d.Point, 0, len(v.vertexToEdges))
	for p := range v.vertexToEdges {
		v.vertices = append(v.vertices, p)
	}
	if len(v.vertices) == 0 {
		v.vertices = []geom2d.Point{bestPt}
	}
	sort.Slice(v.vertices, func(a, b int) bool {
		if v.vertices[a].X != v.vertices[b].X {
			return v.vertices[a].X < v.vertices[b].X
		}
		return v.vertices[a].Y < v.vertices[b].Y
	})

	if opts.PreserveEdge {
		v.findPerimeterVertex(cell)
	}
}

// findPerimeterVertex looks for a medial-axis vertex within roughly one
// grid cell of the polygon boundary, used by OutsidePocket to seed on
// the padded working polygon's own perimeter (§4.8).
func (v *VoronoiCenters) findPerimeterVertex(cell float64) {
	threshold := cell * 1.5
	best := math.Inf(1)
	var bestPt geom2d.Point
	found := false
	for _, p := range v.vertices {
		d := v.Polygon.DistanceToBoundary(p)
		if d < threshold && d < best {
			best = d
			bestPt = p
			found = true
		}
	}
	v.perimeterVertex = bestPt
	v.hasPerimeterVertex = found
}
