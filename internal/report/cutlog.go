package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/hsmpeel/internal/planner"
)

const cutLogSheet = "Cut Log"

var cutLogHeader = []string{"Index", "Type", "Origin/Start X", "Origin/Start Y", "Radius", "Span (deg)", "Winding/Move", "Debug"}

// CutLog writes a per-move spreadsheet for plan: one row per emitted Arc
// or Line, with its geometry and debug tag, for machinist QA review of
// the diagnostics Plan.Diagnostics() only summarizes as counters.
func CutLog(path string, plan *planner.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, cutLogSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range cutLogHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(cutLogSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for i, el := range plan.Path {
		if err := writeCutLogRow(f, row, i, el); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	for col := range cutLogHeader {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(cutLogSheet, name, name, 16); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	diag := plan.Diagnostics()
	summaryRow := row + 1
	_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("A%d", summaryRow), "loop_count")
	_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("B%d", summaryRow), diag.LoopCount)
	_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("A%d", summaryRow+1), "arc_fail_count")
	_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("B%d", summaryRow+1), diag.ArcFailCount)
	_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("A%d", summaryRow+2), "path_fail_count")
	_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("B%d", summaryRow+2), diag.PathFailCount)
	if diag.WorstOversizeArc != nil {
		_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("A%d", summaryRow+3), "worst_oversize_arc (progress, desired)")
		_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("B%d", summaryRow+3), diag.WorstOversizeArc.Progress)
		_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("C%d", summaryRow+3), diag.WorstOversizeArc.Desired)
	}
	if diag.WorstUndersizeArc != nil {
		_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("A%d", summaryRow+4), "worst_undersize_arc (progress, desired)")
		_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("B%d", summaryRow+4), diag.WorstUndersizeArc.Progress)
		_ = f.SetCellValue(cutLogSheet, fmt.Sprintf("C%d", summaryRow+4), diag.WorstUndersizeArc.Desired)
	}

	return f.SaveAs(path)
}

func writeCutLogRow(f *excelize.File, row, index int, el planner.PathElement) error {
	set := func(col int, v interface{}) error {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		return f.SetCellValue(cutLogSheet, cell, v)
	}

	if err := set(1, index); err != nil {
		return err
	}

	switch v := el.(type) {
	case planner.Arc:
		if err := set(2, "ARC"); err != nil {
			return err
		}
		if err := set(3, v.Origin.X); err != nil {
			return err
		}
		if err := set(4, v.Origin.Y); err != nil {
			return err
		}
		if err := set(5, v.Radius); err != nil {
			return err
		}
		if err := set(6, v.SpanAngle*180/3.141592653589793); err != nil {
			return err
		}
		if err := set(7, v.Winding.String()); err != nil {
			return err
		}
		return set(8, v.Debug)

	case planner.Line:
		if err := set(2, "LINE"); err != nil {
			return err
		}
		if err := set(3, v.Start.X); err != nil {
			return err
		}
		if err := set(4, v.Start.Y); err != nil {
			return err
		}
		if err := set(7, v.MoveStyle.String()); err != nil {
			return err
		}
	}
	return nil
}
