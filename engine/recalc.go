// Package engine: the reset-then-reapply recalculation pipeline.
//
// Invariant: after every pass, each edge weight is derivable purely from
// its original weight and the active effect set. Weights are never
// incrementally patched between passes, so removal of any effect is a
// perfect inverse of its addition.
package engine

import (
	"math"

	"github.com/katalvlaran/dynroute/astar"
	"github.com/katalvlaran/dynroute/geometry"
	"github.com/katalvlaran/dynroute/roadgraph"
)

// recalcLocked runs the full pipeline. Caller holds e.mu.
//
// Steps:
//  1. Reset every snapshotted edge weight to its original.
//  2. Reapply active effects in the fixed type order TrafficJam → Rain →
//     Block → TrafficLight (insertion order within a type). Blocks force
//     +Inf unconditionally; delta application skips any edge already at
//     +Inf, so a block always wins regardless of placement order.
//  3. Re-run the search when endpoints are selected; clear the stale
//     result otherwise.
func (e *Engine) recalcLocked() {
	// 1) Reset. Edges without a stored original are left untouched.
	e.g.ResetWeights()

	edges := e.g.Edges()
	pos := e.nodePositions()

	// 2) Fixed order reapplication.
	for _, id := range e.order {
		if jam, ok := e.effects[id].effect.(TrafficJam); ok {
			e.applyLineDelta(edges, pos, jam.Line, jam.Delta)
		}
	}
	for _, id := range e.order {
		if rain, ok := e.effects[id].effect.(Rain); ok {
			e.applyRain(edges, pos, rain)
		}
	}
	for _, id := range e.order {
		if block, ok := e.effects[id].effect.(Block); ok {
			e.applyBlock(edges, pos, block)
		}
	}
	for _, id := range e.order {
		rec := e.effects[id]
		if tl, ok := rec.effect.(TrafficLight); ok {
			e.applyLineDelta(edges, pos, tl.Line, rec.signal.WeightModifier())
		}
	}

	// 3) Search with the refreshed weights.
	if !e.selected {
		e.last = PathResult{}

		return
	}
	path, err := astar.FindPath(e.g, e.start, e.end,
		astar.WithHeuristicScale(e.options.HeuristicScale))
	if err != nil {
		e.last = PathResult{Found: false, Reason: err.Error()}

		return
	}
	e.last = PathResult{Found: true, Path: path}
}

// nodePositions snapshots node positions for the geometry sweeps.
func (e *Engine) nodePositions() map[string]geometry.Point {
	nodes := e.g.Nodes()
	pos := make(map[string]geometry.Point, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n.Pos
	}

	return pos
}

// applyLineDelta adds delta (clamped at 0 by the graph) to every edge
// whose midpoint lies within EffectThreshold of the drawn line. Edges
// already at +Inf are skipped: magnitude deltas never revive a blocked
// edge.
func (e *Engine) applyLineDelta(edges []roadgraph.Edge, pos map[string]geometry.Point, line Segment, delta float64) {
	for _, edge := range edges {
		w, err := e.g.Weight(edge.From, edge.To)
		if err != nil || math.IsInf(w, 1) {
			continue
		}
		mid := geometry.Midpoint(pos[edge.From], pos[edge.To])
		if d, _ := geometry.PointSegmentDistance(mid, line.A, line.B); d < e.options.EffectThreshold {
			e.g.AddToWeight(edge.From, edge.To, delta)
		}
	}
}

// applyRain adds the rain delta to every edge whose midpoint falls
// inside the area. Same +Inf skip as line deltas.
func (e *Engine) applyRain(edges []roadgraph.Edge, pos map[string]geometry.Point, rain Rain) {
	for _, edge := range edges {
		w, err := e.g.Weight(edge.From, edge.To)
		if err != nil || math.IsInf(w, 1) {
			continue
		}
		if rain.Area.Contains(geometry.Midpoint(pos[edge.From], pos[edge.To])) {
			e.g.AddToWeight(edge.From, edge.To, rain.Delta)
		}
	}
}

// applyBlock forces +Inf on every edge whose segment crosses the drawn
// line. Unconditional: a block dominates every magnitude delta.
func (e *Engine) applyBlock(edges []roadgraph.Edge, pos map[string]geometry.Point, block Block) {
	for _, edge := range edges {
		if geometry.SegmentsIntersect(pos[edge.From], pos[edge.To], block.Line.A, block.Line.B) {
			// SetWeight cannot fail here: the edge came from Edges().
			_ = e.g.SetWeight(edge.From, edge.To, math.Inf(1))
		}
	}
}
