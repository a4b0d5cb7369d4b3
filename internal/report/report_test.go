package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
	"github.com/piwi3910/hsmpeel/internal/planner"
)

func testPlan(t *testing.T) (*planner.Plan, geom2d.Polygon) {
	t.Helper()
	square := geom2d.Polygon{Exterior: geom2d.LineString{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}}
	opts := planner.DefaultPlanOptions(1.0, planner.CW)
	opts.Timeslice = 0
	plan, _, err := planner.InsidePocket(square, opts)
	if err != nil {
		t.Fatalf("InsidePocket: %v", err)
	}
	return plan, square
}

func TestPlanPDFCreatesFile(t *testing.T) {
	plan, pocket := testPlan(t)
	path := filepath.Join(t.TempDir(), "plan.pdf")

	if err := PlanPDF(path, plan, pocket, "Test Pocket"); err != nil {
		t.Fatalf("PlanPDF: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PDF file")
	}
}

func TestPlanPDFRejectsEmptyPlan(t *testing.T) {
	empty := &planner.Plan{}
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := PlanPDF(path, empty, geom2d.Polygon{}, "Empty"); err == nil {
		t.Error("expected error for a plan with no path")
	}
}

func TestCutLogCreatesFile(t *testing.T) {
	plan, _ := testPlan(t)
	path := filepath.Join(t.TempDir(), "cutlog.xlsx")

	if err := CutLog(path, plan); err != nil {
		t.Fatalf("CutLog: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty workbook file")
	}
}
