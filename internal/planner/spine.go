package planner

import (
	"github.com/piwi3910/hsmpeel/internal/geom2d"
	"github.com/piwi3910/hsmpeel/internal/voronoi"
)

// joinBranches implements §4.1: greedily walks the medial graph from
// startVertex, concatenating successive unvisited edges into a single
// combined LineString the arc fitter sweeps along. Every edge it walks
// is marked visited at most once for the lifetime of the plan.
func (p *Planner) joinBranches(startVertex geom2d.Point) geom2d.LineString {
	current := startVertex
	combined := geom2d.LineString{current}

	for {
		candidates := p.unvisitedEdgesAt(current)
		if len(candidates) == 0 {
			break
		}

		best := candidates[0]
		bestLen := p.voronoi.Edges()[best].Length()
		for _, id := range candidates[1:] {
			l := p.voronoi.Edges()[id].Length()
			if p.opts.BreadthFirst {
				if l < bestLen {
					best, bestLen = id, l
				}
			} else if l > bestLen {
				best, bestLen = id, l
			}
		}

		p.visitedEdges[best] = true
		p.visitedLength += bestLen
		delete(p.openPaths, best)

		edge := p.voronoi.Edges()[best]
		var oriented geom2d.LineString
		switch {
		case len(edge) > 0 && edge[0].Equal(current, spineEpsilon):
			oriented = edge
		case len(edge) > 0 && edge[len(edge)-1].Equal(current, spineEpsilon):
			oriented = edge.Reverse()
		default:
			// The edge isn't actually incident to current (shouldn't
			// happen with a well-formed medial graph); stop rather than
			// risk an infinite loop.
			return finalizeCombined(combined)
		}

		combined = append(combined, oriented[1:]...)
		current = combined[len(combined)-1]
	}

	return finalizeCombined(combined)
}

const spineEpsilon = 1e-9

func finalizeCombined(combined geom2d.LineString) geom2d.LineString {
	deduped := combined.Dedup(spineEpsilon)
	if len(deduped) < 2 {
		return nil
	}
	return deduped
}

// unvisitedEdgesAt returns, in deterministic order, every edge incident
// to v not yet in visitedEdges, enqueuing each into openPaths as it goes
// (§4.1: "add every such edge into open_paths... pick one as the
// candidate").
func (p *Planner) unvisitedEdgesAt(v geom2d.Point) []voronoi.EdgeID {
	ids := p.voronoi.VertexToEdges()[v]
	var out []voronoi.EdgeID
	for _, id := range ids {
		if p.visitedEdges[id] {
			continue
		}
		p.openPaths[id] = v
		out = append(out, id)
	}
	return out
}

// chooseNextPath implements §4.4's choose_next_path: purge open_paths of
// already-visited edges, then return the stored vertex position nearest
// to current (or, if hasCurrent is false, a deterministic "any" vertex).
// Ties are broken by vertex coordinate so the result never depends on Go
// map iteration order.
func (p *Planner) chooseNextPath(current geom2d.Point, hasCurrent bool) (geom2d.Point, bool) {
	for id := range p.openPaths {
		if p.visitedEdges[id] {
			delete(p.openPaths, id)
		}
	}
	if len(p.openPaths) == 0 {
		return geom2d.Point{}, false
	}

	var chosenID voronoi.EdgeID
	var chosenPos geom2d.Point
	found := false
	bestDist := 0.0

	less := func(pos geom2d.Point, d float64) bool {
		if !found {
			return true
		}
		if hasCurrent && d != bestDist {
			return d < bestDist
		}
		if pos.X != chosenPos.X {
			return pos.X < chosenPos.X
		}
		return pos.Y < chosenPos.Y
	}

	for id, pos := range p.openPaths {
		d := 0.0
		if hasCurrent {
			d = current.Distance(pos)
		}
		if less(pos, d) {
			chosenID, chosenPos, bestDist, found = id, pos, d, true
		}
	}

	delete(p.openPaths, chosenID)
	p.lastCircle = nil
	return chosenPos, true
}
