package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/hsmpeel/internal/planner"
)

// Settings holds the machining parameters a Generator needs on top of a
// finished plan: tool/feed rates and the Z-axis pass schedule. The XY
// path itself comes entirely from planner.Plan.Path.
type Settings struct {
	ToolDiameter float64 // end mill diameter, mm (reported in the header only)
	FeedRate     float64 // cutting feed rate, mm/min
	PlungeRate   float64 // Z plunge feed rate, mm/min
	SpindleSpeed int     // RPM
	SafeZ        float64 // retract height, mm, above the stock surface
	CutDepth     float64 // total depth of the pocket, mm
	PassDepth    float64 // depth removed per pass, mm
	Profile      string  // Profile.Name to post-process with
}

// Generator renders a planner.Plan into G-code text for one controller
// dialect, repeating the plan's XY path once per depth pass.
type Generator struct {
	Settings Settings
	profile  Profile
}

// New returns a Generator configured for settings.Profile (or the
// Generic dialect if unset/unrecognized).
func New(settings Settings) *Generator {
	return &Generator{Settings: settings, profile: GetProfile(settings.Profile)}
}

// Generate renders plan into a complete G-code program: one full pass of
// plan.Path at each depth increment from Settings.PassDepth up to
// Settings.CutDepth.
func (g *Generator) Generate(plan *planner.Plan) string {
	var b strings.Builder

	g.writeHeader(&b, plan)

	numPasses := int(math.Ceil(g.Settings.CutDepth / g.Settings.PassDepth))
	if numPasses < 1 {
		numPasses = 1
	}

	for pass := 1; pass <= numPasses; pass++ {
		depth := float64(pass) * g.Settings.PassDepth
		if depth > g.Settings.CutDepth {
			depth = g.Settings.CutDepth
		}
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.3fmm", pass, numPasses, depth)))
		g.writePass(&b, plan.Path, depth)
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, plan *planner.Plan) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("hsmpeel toolpath %s", plan.ID)))
	b.WriteString(g.comment(fmt.Sprintf("Tool: %.2fmm, Feed: %.0f mm/min, Plunge: %.0f mm/min", g.Settings.ToolDiameter, g.Settings.FeedRate, g.Settings.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.2fmm in %.2fmm passes", g.Settings.CutDepth, g.Settings.PassDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", g.Settings.SpindleSpeed))
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile
	b.WriteString("\n")
	b.WriteString(p.CommentPrefix + " job complete" + p.CommentSuffix + "\n")
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
}

// writePass walks the plan's path once at the given Z depth: arcs cut at
// depth via G2/G3, RAPID_OUTSIDE lines retract to safe Z before rapiding
// and re-plunge at the far end, RAPID_INSIDE lines rapid at depth (the
// material there is already cleared), and CUT lines feed at depth.
func (g *Generator) writePass(b *strings.Builder, path []planner.PathElement, depth float64) {
	p := g.profile
	z := -depth
	first := true

	for _, el := range path {
		switch v := el.(type) {
		case planner.Arc:
			if first {
				b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(v.Start.X), g.format(v.Start.Y)))
				g.writePlungeAt(b, z)
				first = false
			}
			g.writeArc(b, v, z)

		case planner.Line:
			if first {
				b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(v.Start.X), g.format(v.Start.Y)))
				g.writePlungeAt(b, z)
				first = false
			}
			g.writeLine(b, v, z)
		}
	}
}

func (g *Generator) writePlungeAt(b *strings.Builder, z float64) {
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", g.profile.FeedMove, g.format(z), g.format(g.Settings.PlungeRate)))
}

func (g *Generator) writeArc(b *strings.Builder, a planner.Arc, z float64) {
	cmd := g.profile.CWArc
	if a.Winding == planner.CCW {
		cmd = g.profile.CCWArc
	}
	iOffset := a.Origin.X - a.Start.X
	jOffset := a.Origin.Y - a.Start.Y
	b.WriteString(fmt.Sprintf("%s X%s Y%s Z%s I%s J%s F%s\n",
		cmd, g.format(a.End.X), g.format(a.End.Y), g.format(z),
		g.format(iOffset), g.format(jOffset), g.format(g.Settings.FeedRate)))
}

func (g *Generator) writeLine(b *strings.Builder, l planner.Line, z float64) {
	p := g.profile
	switch l.MoveStyle {
	case planner.RapidOutside:
		b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(l.End.X), g.format(l.End.Y)))
		g.writePlungeAt(b, z)
	case planner.RapidInside:
		b.WriteString(fmt.Sprintf("%s X%s Y%s Z%s\n", p.RapidMove, g.format(l.End.X), g.format(l.End.Y), g.format(z)))
	default: // Cut
		b.WriteString(fmt.Sprintf("%s X%s Y%s Z%s F%s\n", p.FeedMove, g.format(l.End.X), g.format(l.End.Y), g.format(z), g.format(g.Settings.FeedRate)))
	}
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
