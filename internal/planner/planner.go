package planner

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
	"github.com/piwi3910/hsmpeel/internal/voronoi"
)

// Planner owns every piece of mutable state from spec.md §3 for one
// plan run. It is constructed and driven internally by InsidePocket /
// OutsidePocket / OutsidePocketSimple; callers only ever see the
// resulting *Plan.
type Planner struct {
	opts    PlanOptions
	voronoi *voronoi.VoronoiCenters
	pocket  geom2d.Polygon // material minus obstacles; used for masking and jitter filtering

	boundaryRings []geom2d.LineString

	cutArea      *cutArea
	cutAreaSwept geom2d.RegionSet

	visitedEdges  map[voronoi.EdgeID]bool
	openPaths     map[voronoi.EdgeID]geom2d.Point
	visitedLength float64
	totalLength   float64

	pendingQueues [][]Arc
	path          []PathElement

	lastArc     Arc
	hasLastArc  bool
	lastWinding Winding
	lastCircle  *geom2d.Circle

	controller StepController

	diagnostics       []Diagnostic
	loopCount         int
	arcFailCount      int
	pathFailCount     int
	worstOversizeArc  *ArcSizeMismatch
	worstUndersizeArc *ArcSizeMismatch

	startVertex geom2d.Point
	hasStart    bool
}

func newPlanner(pocket geom2d.Polygon, vc *voronoi.VoronoiCenters, opts PlanOptions) *Planner {
	total := 0.0
	for _, e := range vc.Edges() {
		total += e.Length()
	}
	boundaryRings := append([]geom2d.LineString{}, pocket.Rings()...)

	return &Planner{
		opts:          opts,
		voronoi:       vc,
		pocket:        pocket,
		boundaryRings: boundaryRings,
		cutArea:       &cutArea{},
		visitedEdges:  make(map[voronoi.EdgeID]bool),
		openPaths:     make(map[voronoi.EdgeID]geom2d.Point),
		totalLength:   total,
		controller:    NewController(opts.Kp),
	}
}

// Plan is the finished output of a planner run (§3, §6): the ordered
// path plus the medial-axis handle (for visualization) and a snapshot of
// the non-fatal diagnostics recorded along the way.
type Plan struct {
	ID      uuid.UUID
	Path    []PathElement
	Voronoi *voronoi.VoronoiCenters

	diagnostics       []Diagnostic
	loopCount         int
	arcFailCount      int
	pathFailCount     int
	worstOversizeArc  *ArcSizeMismatch
	worstUndersizeArc *ArcSizeMismatch
}

// PlanDiagnostics summarizes the counters and tagged arcs a careful
// caller (or internal/report's cut-log export) would want after a run.
// WorstOversizeArc/WorstUndersizeArc are nil if every fit converged.
type PlanDiagnostics struct {
	LoopCount         int
	ArcFailCount      int
	PathFailCount     int
	Events            []Diagnostic
	WorstOversizeArc  *ArcSizeMismatch
	WorstUndersizeArc *ArcSizeMismatch
}

// Diagnostics returns the plan's non-fatal error/counter summary (§7,
// supplementing spec.md with a concrete retrieval API for the debug tags
// it only gestures at).
func (p *Plan) Diagnostics() PlanDiagnostics {
	return PlanDiagnostics{
		LoopCount:         p.loopCount,
		ArcFailCount:      p.arcFailCount,
		PathFailCount:     p.pathFailCount,
		Events:            p.diagnostics,
		WorstOversizeArc:  p.worstOversizeArc,
		WorstUndersizeArc: p.worstUndersizeArc,
	}
}

// InsidePocket implements §4.8's InsidePocket constructor: seeds at the
// pocket's widest inscribed circle, pre-cuts that starting ring, and
// walks the medial axis outward. When opts.Timeslice > 0 the run happens
// on a background goroutine and progress is reported on the returned
// channel (closed when the plan is done); otherwise the plan runs
// eagerly and the channel is nil. In the streaming case the returned
// Plan is filled in just before the final 1.0 report, so it is complete
// once the channel is closed. This channel replaces the source's
// boolean generate flag: a positive Timeslice is the request to stream
// progress, mirroring §5's generator interface without needing a
// separate boolean.
func InsidePocket(polygon geom2d.Polygon, opts PlanOptions) (*Plan, <-chan float64, error) {
	if len(polygon.Exterior) < 3 {
		return nil, nil, newInvalidGeometry("pocket exterior needs at least 3 vertices")
	}

	vc, err := voronoi.New(polygon, voronoi.Options{GridResolution: 48})
	if err != nil {
		return nil, nil, &PlanError{Kind: InvalidGeometry, Err: err}
	}

	p := newPlanner(polygon, vc, opts)

	center, radius := vc.WidestGap()
	p.lastCircle = &geom2d.Circle{Center: center, Radius: radius}
	p.cutArea.add(center, radius)
	p.cutAreaSwept = geom2d.RegionSet{geom2d.Disk{Center: center, Radius: radius + opts.Step/2}}

	startingRing := Arc{Origin: center, Radius: radius, Path: geom2d.FullCircle(center, radius, arcSegmentsPerRevolution)}
	completed := completeArc(startingRing, opts.Winding, CW, false)
	p.path = append(p.path, completed)
	p.lastArc = completed
	p.lastWinding = completed.Winding
	p.hasLastArc = true
	p.sweepPath(completed.Path)

	p.startVertex, p.hasStart = center, true

	return p.runAndBuildPlan(opts)
}

// OutsidePocket implements §4.8's OutsidePocket constructor: clears the
// material around a set of obstacles, walking the medial axis of a
// padded working polygon whose own perimeter seeds the walk.
func OutsidePocket(obstacles geom2d.MultiPolygon, material geom2d.Polygon, opts PlanOptions) (*Plan, <-chan float64, error) {
	if len(material.Exterior) < 3 {
		return nil, nil, newInvalidGeometry("material exterior needs at least 3 vertices")
	}

	pad := 4 * opts.Step
	min, max := material.BoundingBox()
	outerBox := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: min.X - pad, Y: min.Y - pad},
		{X: max.X + pad, Y: min.Y - pad},
		{X: max.X + pad, Y: max.Y + pad},
		{X: min.X - pad, Y: max.Y + pad},
	}}

	holes := make([]geom2d.LineString, 0, len(obstacles))
	for _, o := range obstacles {
		holes = append(holes, o.Exterior)
	}

	working := geom2d.Polygon{Exterior: outerBox.Exterior, Holes: holes}
	vc, err := voronoi.New(working, voronoi.Options{GridResolution: 48, PreserveEdge: true})
	if err != nil {
		return nil, nil, &PlanError{Kind: InvalidGeometry, Err: err}
	}

	pocketToCut := geom2d.Polygon{Exterior: material.Exterior, Holes: holes}
	p := newPlanner(pocketToCut, vc, opts)
	p.boundaryRings = append(p.boundaryRings, outerBox.Exterior)

	// Everything outside the material stock is already "cut": approximate
	// Polygon(outer_box) - Polygon(material) as a ring of disks hugging
	// the material boundary from outside, wide enough that any tangent
	// circle centered in the margin registers fully covered.
	marginRadius := pad
	for _, v := range material.Exterior {
		p.cutArea.add(v, marginRadius)
	}
	p.lastCircle = nil

	seed, ok := vc.VertexOnPerimeter()
	if !ok {
		seed, _ = vc.WidestGap()
	}
	p.startVertex, p.hasStart = seed, true

	return p.runAndBuildPlan(opts)
}

// OutsidePocketSimple implements §4.8's convenience constructor: a
// polygon's own holes become the obstacles, its exterior the material.
func OutsidePocketSimple(polygon geom2d.Polygon, opts PlanOptions) (*Plan, <-chan float64, error) {
	obstacles := make(geom2d.MultiPolygon, 0, len(polygon.Holes))
	for _, h := range polygon.Holes {
		obstacles = append(obstacles, geom2d.Polygon{Exterior: h})
	}
	material := geom2d.Polygon{Exterior: polygon.Exterior}
	return OutsidePocket(obstacles, material, opts)
}

// runAndBuildPlan drives the outer loop (§4.4) and assembles the result.
func (p *Planner) runAndBuildPlan(opts PlanOptions) (*Plan, <-chan float64, error) {
	if opts.Timeslice <= 0 {
		p.run(nil)
		return p.toPlan(), nil, nil
	}

	plan := &Plan{}
	progress := make(chan float64, 1)
	go func() {
		defer close(progress)
		inner := make(chan float64)
		go p.run(inner)
		for r := range inner {
			if r >= 1.0 {
				// run has finished mutating p: fill in the returned plan
				// before the final report reaches the caller.
				*plan = *p.toPlan()
			}
			progress <- r
		}
	}()
	return plan, progress, nil
}

func (p *Planner) toPlan() *Plan {
	return &Plan{
		ID:                uuid.New(),
		Path:              p.path,
		Voronoi:           p.voronoi,
		diagnostics:       p.diagnostics,
		loopCount:         p.loopCount,
		arcFailCount:      p.arcFailCount,
		pathFailCount:     p.pathFailCount,
		worstOversizeArc:  p.worstOversizeArc,
		worstUndersizeArc: p.worstUndersizeArc,
	}
}

// run is the outer driver loop from §4.4. When progress is non-nil it
// cooperatively yields a ratio in [0, 0.999] every opts.Timeslice, then
// reports 1.0 and closes the channel on completion (§5).
func (p *Planner) run(progress chan<- float64) {
	if progress != nil {
		defer close(progress)
	}
	sliceStart := time.Now()

	for p.hasStart {
		p.loopCount++
		edge := p.joinBranches(p.startVertex)
		if edge.IsEmpty() {
			p.startVertex, p.hasStart = p.chooseNextPath(geom2d.Point{}, false)
			continue
		}

		dist := 0.0
		bestDist := 0.0
		stuckBudget := int(edge.Length()*10/p.opts.Step) + 10

		for math.Abs(dist-edge.Length()) > p.opts.Step/20 && stuckBudget > 0 {
			stuckBudget--

			var newArcs []Arc
			dist, newArcs = p.calculateArc(edge, dist, bestDist)
			if dist < bestDist {
				// Regressed: more likely stuck than on a legitimate detour,
				// so burn the budget faster than the per-iteration decrement.
				stuckBudget /= 2
			} else {
				bestDist = dist
			}
			p.queueArcs(newArcs)

			if progress != nil && time.Since(sliceStart) >= p.opts.Timeslice {
				progress <- p.progressRatio()
				sliceStart = time.Now()
			}
		}
		if stuckBudget <= 0 {
			p.recordDiagnostic(FitterStuck, "edge exhausted stuck budget")
		}

		last := edge[len(edge)-1]
		p.startVertex, p.hasStart = p.chooseNextPath(last, true)
		p.flushArcQueues()
	}

	if progress != nil {
		progress <- 1.0
	}
}

func (p *Planner) progressRatio() float64 {
	if p.totalLength <= 0 {
		return 0
	}
	ratio := p.visitedLength / p.totalLength
	if ratio > 0.999 {
		ratio = 0.999
	}
	return ratio
}
