package planner

import "time"

// PlanOptions holds every tunable named in spec.md §6, plus the
// concurrency knob from §5. Mirrors the teacher's CutSettings /
// GeneticConfig pattern: a plain struct with a defaults constructor, no
// environment or flag binding inside the library itself.
type PlanOptions struct {
	Step    float64
	Winding Winding

	IterationCount   int
	BreadthFirst     bool
	CornerZoom       float64
	CornerZoomEffect float64
	JitterFilter     float64
	Kp               float64

	// Timeslice is the cooperative yield interval (§5). Zero disables
	// generator-style yielding and runs the plan to completion eagerly.
	Timeslice time.Duration
}

// DefaultPlanOptions returns the §6 tunable-constants table's defaults
// for the given step-over and winding.
func DefaultPlanOptions(step float64, winding Winding) PlanOptions {
	return PlanOptions{
		Step:             step,
		Winding:          winding,
		IterationCount:   50,
		BreadthFirst:     false,
		CornerZoom:       2.0,
		CornerZoomEffect: 1.0,
		JitterFilter:     0.02,
		Kp:               DefaultKp,
		Timeslice:        0,
	}
}
