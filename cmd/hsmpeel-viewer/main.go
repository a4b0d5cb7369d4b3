// hsmpeel-viewer — interactive preview of a planned HSM pocket toolpath
//
// Loads a DXF pocket, plans it the same way the hsmpeel CLI does, and
// displays the result in a zoomable, pannable window.
//
// Build:
//   go build -o hsmpeel-viewer ./cmd/hsmpeel-viewer
package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/hsmpeel/internal/config"
	"github.com/piwi3910/hsmpeel/internal/importer"
	"github.com/piwi3910/hsmpeel/internal/planner"
	"github.com/piwi3910/hsmpeel/internal/ui"
)

func main() {
	cfg, err := config.LoadAppConfig(config.DefaultConfigPath())
	if err != nil {
		cfg = config.DefaultAppConfig()
	}

	dxfPath := flag.String("dxf", "", "path to the input DXF drawing (required)")
	step := flag.Float64("step", cfg.DefaultStep, "step-over distance, mm")
	windingName := flag.String("winding", cfg.DefaultWinding, "arc winding: CW, CCW, or Closest")
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

	winding := planner.CW
	switch *windingName {
	case "CCW":
		winding = planner.CCW
	case "Closest":
		winding = planner.Closest
	}

	opts := planner.DefaultPlanOptions(*step, winding)
	plan, _, err := planner.InsidePocket(result.Pocket, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: plan failed: %v\n", err)
		os.Exit(1)
	}

	application := app.NewWithID("com.piwi3910.hsmpeel-viewer")
	window := application.NewWindow("hsmpeel viewer — " + *dxfPath)
	window.SetContent(ui.RenderPlanSummary(result.Pocket, plan))
	window.Resize(fyne.NewSize(800, 600))
	window.CenterOnScreen()
	window.ShowAndRun()
}
