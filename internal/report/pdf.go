// Package report renders a finished planner.Plan to machinist-facing
// artifacts: a plan-view PDF and a per-move cut-log workbook.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
	"github.com/piwi3910/hsmpeel/internal/planner"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 18.0
)

// planSummary is the JSON payload encoded into the title-block QR code,
// letting a shop-floor scanner pull up the exact run that produced a page.
type planSummary struct {
	PlanID        string `json:"plan_id"`
	LoopCount     int    `json:"loop_count"`
	ArcFailCount  int    `json:"arc_fail_count"`
	PathFailCount int    `json:"path_fail_count"`
}

// PlanPDF renders plan's toolpath over pocket on a single A4-landscape
// page: cut arcs colored by debug tag, connector lines colored by move style, and
// a title block carrying a QR code that encodes the run's diagnostic
// summary.
func PlanPDF(path string, plan *planner.Plan, pocket geom2d.Polygon, title string) error {
	if len(plan.Path) == 0 {
		return fmt.Errorf("plan has no path to render")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize-5, headerHeight, title, "", 0, "L", false, 0, "")

	diag := plan.Diagnostics()
	if err := drawTitleBlockQR(pdf, planSummary{
		PlanID:        plan.ID.String(),
		LoopCount:     diag.LoopCount,
		ArcFailCount:  diag.ArcFailCount,
		PathFailCount: diag.PathFailCount,
	}); err != nil {
		return err
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	min, max := pocket.BoundingBox()
	spanX, spanY := max.X-min.X, max.Y-min.Y
	if spanX <= 0 || spanY <= 0 {
		return fmt.Errorf("pocket has degenerate bounding box")
	}

	scale := math.Min(drawWidth/spanX, drawHeight/spanY)
	offsetX := marginLeft + (drawWidth-spanX*scale)/2
	offsetY := drawAreaTop

	project := func(p geom2d.Point) (float64, float64) {
		return offsetX + (p.X-min.X)*scale, offsetY + (max.Y-p.Y)*scale
	}

	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)
	drawRing(pdf, pocket.Exterior, project, true)
	for _, h := range pocket.Holes {
		pdf.SetFillColor(255, 255, 255)
		drawRing(pdf, h, project, true)
	}

	for _, el := range plan.Path {
		switch v := el.(type) {
		case planner.Arc:
			setStrokeForArc(pdf, v)
			drawPolyline(pdf, v.Path, project)
		case planner.Line:
			setStrokeForMove(pdf, v.MoveStyle)
			drawPolyline(pdf, v.Path, project)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func drawTitleBlockQR(pdf *fpdf.Fpdf, summary planSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal plan summary: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode QR code: %w", err)
	}

	imgName := "qr_" + summary.PlanID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	qrX := pageWidth - marginRight - qrSize
	pdf.ImageOptions(imgName, qrX, marginTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func drawRing(pdf *fpdf.Fpdf, ring geom2d.LineString, project func(geom2d.Point) (float64, float64), fill bool) {
	if len(ring) < 2 {
		return
	}
	style := "D"
	if fill {
		style = "FD"
	}
	pdf.Polygon(toPoints(pdf, ring, project), style)
}

func toPoints(_ *fpdf.Fpdf, ring geom2d.LineString, project func(geom2d.Point) (float64, float64)) []fpdf.PointType {
	pts := make([]fpdf.PointType, len(ring))
	for i, p := range ring {
		x, y := project(p)
		pts[i] = fpdf.PointType{X: x, Y: y}
	}
	return pts
}

func drawPolyline(pdf *fpdf.Fpdf, path geom2d.LineString, project func(geom2d.Point) (float64, float64)) {
	for i := 0; i+1 < len(path); i++ {
		x1, y1 := project(path[i])
		x2, y2 := project(path[i+1])
		pdf.Line(x1, y1, x2, y2)
	}
}

func setStrokeForArc(pdf *fpdf.Fpdf, a planner.Arc) {
	switch a.Debug {
	case "red":
		pdf.SetDrawColor(220, 50, 50)
	case "orange":
		pdf.SetDrawColor(230, 150, 30)
	default:
		pdf.SetDrawColor(33, 150, 243)
	}
	pdf.SetLineWidth(0.4)
}

func setStrokeForMove(pdf *fpdf.Fpdf, m planner.MoveStyle) {
	switch m {
	case planner.RapidOutside:
		pdf.SetDrawColor(200, 200, 200)
	case planner.RapidInside:
		pdf.SetDrawColor(150, 150, 150)
	default: // Cut
		pdf.SetDrawColor(76, 175, 80)
	}
	pdf.SetLineWidth(0.25)
}
