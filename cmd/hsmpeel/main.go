// hsmpeel — HSM pocket-milling toolpath planner
//
// Reads a pocket outline from a DXF drawing, plans a high-speed-machining
// peeling toolpath over it, and writes G-code plus a plan-view PDF and a
// per-move cut-log workbook.
//
// Build:
//   go build -o hsmpeel ./cmd/hsmpeel
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/piwi3910/hsmpeel/internal/config"
	"github.com/piwi3910/hsmpeel/internal/gcode"
	"github.com/piwi3910/hsmpeel/internal/importer"
	"github.com/piwi3910/hsmpeel/internal/planner"
	"github.com/piwi3910/hsmpeel/internal/report"
)

func main() {
	cfg, err := config.LoadAppConfig(config.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load config, using defaults: %v\n", err)
		cfg = config.DefaultAppConfig()
	}

	var (
		dxfPath   = flag.String("dxf", "", "path to the input DXF drawing (required)")
		outPrefix = flag.String("out", "plan", "output file prefix for .gcode/.pdf/.xlsx")

		step             = flag.Float64("step", cfg.DefaultStep, "step-over distance, mm")
		windingName      = flag.String("winding", cfg.DefaultWinding, "arc winding: CW, CCW, or Closest")
		iterationCount   = flag.Int("iterations", 0, "fitter iteration budget per arc (0 = library default)")
		breadthFirst     = flag.Bool("breadth-first", false, "spine walker prefers the shortest unvisited branch instead of the longest")
		cornerZoom       = flag.Float64("corner-zoom", 0, "corner zoom radius factor (0 = library default)")
		cornerZoomEffect = flag.Float64("corner-zoom-effect", 0, "corner zoom strength (0 = library default)")
		jitterFilter     = flag.Float64("jitter-filter", 0, "drop arcs lying entirely within this distance of a pocket boundary ring (0 = library default)")
		timeslice        = flag.Duration("timeslice", 0, "progress-reporting interval; 0 runs the plan eagerly with no progress updates")

		toolDiameter = flag.Float64("tool-diameter", 6.0, "end mill diameter, mm")
		feedRate     = flag.Float64("feed-rate", 1500.0, "cutting feed rate, mm/min")
		plungeRate   = flag.Float64("plunge-rate", 400.0, "Z plunge feed rate, mm/min")
		spindleSpeed = flag.Int("spindle-speed", 18000, "spindle speed, RPM")
		safeZ        = flag.Float64("safe-z", 5.0, "retract height above the stock surface, mm")
		cutDepth     = flag.Float64("cut-depth", 6.0, "total pocket depth, mm")
		passDepth    = flag.Float64("pass-depth", 3.0, "depth removed per pass, mm")
		gcodeProfile = flag.String("gcode-profile", cfg.DefaultGCodeProfile, "controller dialect: "+strings.Join(gcode.GetProfileNames(), ", "))
	)
	flag.Parse()

	if *dxfPath == "" {
		fmt.Fprintln(os.Stderr, "error: -dxf is required")
		flag.Usage()
		os.Exit(2)
	}

	result := importer.ImportDXF(*dxfPath)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		os.Exit(1)
	}

	winding, err := parseWinding(*windingName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	opts := planner.DefaultPlanOptions(*step, winding)
	if *iterationCount > 0 {
		opts.IterationCount = *iterationCount
	}
	opts.BreadthFirst = *breadthFirst
	if *cornerZoom > 0 {
		opts.CornerZoom = *cornerZoom
	}
	if *cornerZoomEffect > 0 {
		opts.CornerZoomEffect = *cornerZoomEffect
	}
	if *jitterFilter > 0 {
		opts.JitterFilter = *jitterFilter
	}
	opts.Timeslice = *timeslice

	start := time.Now()
	plan, progress, err := planner.InsidePocket(result.Pocket, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: plan failed: %v\n", err)
		os.Exit(1)
	}
	if progress != nil {
		for p := range progress {
			fmt.Fprintf(os.Stderr, "planning: %.0f%%\n", p*100)
		}
	}
	diag := plan.Diagnostics()
	fmt.Fprintf(os.Stderr, "planned %d elements in %s (loops=%d arc-reseeds=%d path-fallbacks=%d)\n",
		len(plan.Path), time.Since(start).Round(time.Millisecond), diag.LoopCount, diag.ArcFailCount, diag.PathFailCount)

	gen := gcode.New(gcode.Settings{
		ToolDiameter: *toolDiameter,
		FeedRate:     *feedRate,
		PlungeRate:   *plungeRate,
		SpindleSpeed: *spindleSpeed,
		SafeZ:        *safeZ,
		CutDepth:     *cutDepth,
		PassDepth:    *passDepth,
		Profile:      *gcodeProfile,
	})
	gcodeText := gen.Generate(plan)
	if err := os.WriteFile(*outPrefix+".gcode", []byte(gcodeText), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing G-code: %v\n", err)
		os.Exit(1)
	}

	if err := report.PlanPDF(*outPrefix+".pdf", plan, result.Pocket, "hsmpeel plan"); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing plan PDF: %v\n", err)
		os.Exit(1)
	}

	if err := report.CutLog(*outPrefix+".xlsx", plan); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing cut log: %v\n", err)
		os.Exit(1)
	}

	config.PushRecentFile(&cfg, *dxfPath)
	if err := config.SaveAppConfig(config.DefaultConfigPath(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "wrote %s.gcode, %s.pdf, %s.xlsx\n", *outPrefix, *outPrefix, *outPrefix)
}

func parseWinding(s string) (planner.Winding, error) {
	switch s {
	case "CW":
		return planner.CW, nil
	case "CCW":
		return planner.CCW, nil
	case "Closest":
		return planner.Closest, nil
	default:
		return 0, fmt.Errorf("unknown winding %q (want CW, CCW, or Closest)", s)
	}
}
