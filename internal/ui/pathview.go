// Package ui renders a finished planner.Plan on screen with fyne, giving
// the operator the same zoomable, pannable toolpath preview the teacher
// built for sheet layouts, adapted to arcs and lines instead of rectangles.
package ui

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/hsmpeel/internal/geom2d"
	"github.com/piwi3910/hsmpeel/internal/planner"
)

var (
	colorPocket  = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorHole    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorCut     = color.NRGBA{R: 76, G: 175, B: 80, A: 230}
	colorZoomArc = color.NRGBA{R: 220, G: 50, B: 50, A: 230}
	colorStuck   = color.NRGBA{R: 230, G: 150, B: 30, A: 230}
	colorRapidIn = color.NRGBA{R: 150, G: 150, B: 150, A: 200}
	colorRapidOt = color.NRGBA{R: 210, G: 210, B: 210, A: 180}
)

const (
	minZoom     = 0.25
	maxZoom     = 10.0
	zoomStep    = 1.15
	defaultZoom = 1.0
)

// PathView is a custom fyne widget rendering a pocket outline and a
// planner.Plan's toolpath, with mouse-wheel zoom and click-drag pan.
type PathView struct {
	widget.BaseWidget
	pocket    geom2d.Polygon
	plan      *planner.Plan
	maxWidth  float32
	maxHeight float32

	mu       sync.Mutex
	zoom     float64
	panX     float64
	panY     float64
	dragging bool
	dragX    float32
	dragY    float32
}

// NewPathView creates a zoomable, pannable toolpath preview for plan over
// pocket, fit within maxW x maxH.
func NewPathView(pocket geom2d.Polygon, plan *planner.Plan, maxW, maxH float32) *PathView {
	pv := &PathView{
		pocket:    pocket,
		plan:      plan,
		maxWidth:  maxW,
		maxHeight: maxH,
		zoom:      defaultZoom,
	}
	pv.ExtendBaseWidget(pv)
	return pv
}

// Scrolled handles mouse wheel zoom, centered on the cursor position.
func (pv *PathView) Scrolled(ev *fyne.ScrollEvent) {
	pv.mu.Lock()
	defer pv.mu.Unlock()

	oldZoom := pv.zoom
	if ev.Scrolled.DY > 0 {
		pv.zoom *= zoomStep
	} else if ev.Scrolled.DY < 0 {
		pv.zoom /= zoomStep
	}
	pv.zoom = math.Max(minZoom, math.Min(maxZoom, pv.zoom))

	cursorX := float64(ev.Position.X)
	cursorY := float64(ev.Position.Y)
	factor := pv.zoom / oldZoom
	pv.panX = cursorX - (cursorX-pv.panX)*factor
	pv.panY = cursorY - (cursorY-pv.panY)*factor

	pv.Refresh()
}

// MouseDown starts a pan drag.
func (pv *PathView) MouseDown(ev *desktop.MouseEvent) {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	pv.dragging = true
	pv.dragX = ev.Position.X
	pv.dragY = ev.Position.Y
}

// MouseUp ends a pan drag.
func (pv *PathView) MouseUp(_ *desktop.MouseEvent) {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	pv.dragging = false
}

// MouseMoved pans the view while dragging.
func (pv *PathView) MouseMoved(ev *desktop.MouseEvent) {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	if !pv.dragging {
		return
	}
	dx := float64(ev.Position.X - pv.dragX)
	dy := float64(ev.Position.Y - pv.dragY)
	pv.panX += dx
	pv.panY += dy
	pv.dragX = ev.Position.X
	pv.dragY = ev.Position.Y
	pv.Refresh()
}

// ResetZoom resets zoom to 1.0 and pan to the origin.
func (pv *PathView) ResetZoom() {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	pv.zoom = defaultZoom
	pv.panX = 0
	pv.panY = 0
	pv.Refresh()
}

// ZoomLevel returns the current zoom level.
func (pv *PathView) ZoomLevel() float64 {
	pv.mu.Lock()
	defer pv.mu.Unlock()
	return pv.zoom
}

// SetZoomCentered zooms centered on the widget's own center point.
func (pv *PathView) SetZoomCentered(newZoom float64) {
	pv.mu.Lock()
	defer pv.mu.Unlock()

	oldZoom := pv.zoom
	pv.zoom = math.Max(minZoom, math.Min(maxZoom, newZoom))
	centerX := float64(pv.maxWidth) / 2
	centerY := float64(pv.maxHeight) / 2
	factor := pv.zoom / oldZoom
	pv.panX = centerX - (centerX-pv.panX)*factor
	pv.panY = centerY - (centerY-pv.panY)*factor

	pv.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (pv *PathView) CreateRenderer() fyne.WidgetRenderer {
	return newPathViewRenderer(pv)
}

type pathViewRenderer struct {
	pv      *PathView
	objects []fyne.CanvasObject
}

func newPathViewRenderer(pv *PathView) *pathViewRenderer {
	r := &pathViewRenderer{pv: pv}
	r.rebuild()
	return r
}

func (r *pathViewRenderer) rebuild() {
	r.objects = nil

	pv := r.pv
	min, max := pv.pocket.BoundingBox()
	spanX := float32(max.X - min.X)
	spanY := float32(max.Y - min.Y)
	if spanX <= 0 || spanY <= 0 {
		return
	}

	scaleX := pv.maxWidth / spanX
	scaleY := pv.maxHeight / spanY
	baseScale := scaleX
	if scaleY < baseScale {
		baseScale = scaleY
	}

	pv.mu.Lock()
	zoom := float32(pv.zoom)
	panX := float32(pv.panX)
	panY := float32(pv.panY)
	pv.mu.Unlock()

	scale := baseScale * zoom

	project := func(p geom2d.Point) fyne.Position {
		x := float32(p.X-min.X)*scale + panX
		y := float32(max.Y-p.Y)*scale + panY
		return fyne.NewPos(x, y)
	}

	r.drawRing(pv.pocket.Exterior, project, colorPocket)
	for _, h := range pv.pocket.Holes {
		r.drawRing(h, project, colorHole)
	}

	if pv.plan == nil {
		return
	}
	for _, el := range pv.plan.Path {
		switch v := el.(type) {
		case planner.Arc:
			r.drawPolyline(v.Path, project, arcColor(v))
		case planner.Line:
			r.drawPolyline(v.Path, project, lineColor(v.MoveStyle))
		}
	}
}

func (r *pathViewRenderer) drawRing(ring geom2d.LineString, project func(geom2d.Point) fyne.Position, fill color.NRGBA) {
	if len(ring) < 2 {
		return
	}
	for i := 0; i+1 < len(ring); i++ {
		line := canvas.NewLine(fill)
		line.StrokeWidth = 1
		line.Position1 = project(ring[i])
		line.Position2 = project(ring[i+1])
		r.objects = append(r.objects, line)
	}
}

func (r *pathViewRenderer) drawPolyline(path geom2d.LineString, project func(geom2d.Point) fyne.Position, col color.NRGBA) {
	for i := 0; i+1 < len(path); i++ {
		line := canvas.NewLine(col)
		line.StrokeWidth = 1.5
		line.Position1 = project(path[i])
		line.Position2 = project(path[i+1])
		r.objects = append(r.objects, line)
	}
}

func arcColor(a planner.Arc) color.NRGBA {
	switch a.Debug {
	case "red":
		return colorZoomArc
	case "orange":
		return colorStuck
	default:
		return colorCut
	}
}

func lineColor(m planner.MoveStyle) color.NRGBA {
	switch m {
	case planner.RapidOutside:
		return colorRapidOt
	case planner.RapidInside:
		return colorRapidIn
	default:
		return colorCut
	}
}

func (r *pathViewRenderer) Layout(fyne.Size)            {}
func (r *pathViewRenderer) Refresh()                    { r.rebuild() }
func (r *pathViewRenderer) Destroy()                    {}
func (r *pathViewRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *pathViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pv.maxWidth, r.pv.maxHeight)
}

// RenderPlanSummary builds a small status panel with zoom controls and
// diagnostic counters above the PathView, mirroring the teacher's result
// summary layout.
func RenderPlanSummary(pocket geom2d.Polygon, plan *planner.Plan) fyne.CanvasObject {
	if plan == nil || len(plan.Path) == 0 {
		return widget.NewLabel("No toolpath to display.")
	}

	pv := NewPathView(pocket, plan, 600, 400)
	zoomLabel := widget.NewLabel("100%")

	resetBtn := widget.NewButtonWithIcon("Reset Zoom", theme.ViewRestoreIcon(), func() {
		pv.ResetZoom()
		zoomLabel.SetText("100%")
	})
	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		newZoom := math.Min(maxZoom, pv.ZoomLevel()*zoomStep)
		pv.SetZoomCentered(newZoom)
		zoomLabel.SetText(fmt.Sprintf("%.0f%%", pv.ZoomLevel()*100))
	})
	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		newZoom := math.Max(minZoom, pv.ZoomLevel()/zoomStep)
		pv.SetZoomCentered(newZoom)
		zoomLabel.SetText(fmt.Sprintf("%.0f%%", pv.ZoomLevel()*100))
	})

	controls := container.NewHBox(zoomOutBtn, zoomLabel, zoomInBtn, layout.NewSpacer(), resetBtn)

	diag := plan.Diagnostics()
	summary := widget.NewLabel(fmt.Sprintf(
		"%d loops, %d arc reseeds, %d path fallbacks",
		diag.LoopCount, diag.ArcFailCount, diag.PathFailCount,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}

	return container.NewVBox(summary, pv, controls)
}
