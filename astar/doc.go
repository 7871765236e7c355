// Package astar implements A* shortest-path search over the road graph
// using current edge weights and a Euclidean admissible heuristic.
//
// What:
//
//   - FindPath(g, start, end, opts...) returns the ordered node sequence
//     and total cost of the cheapest route, or ErrNoPath.
//   - The heuristic is the straight-line distance between node positions
//     divided by HeuristicScale, matching the unit relation between
//     pixel distances and road weights. Physical distance underestimates
//     any weighted cost that is itself at or above a distance-derived
//     base cost, so the heuristic is admissible and the result optimal.
//   - Edges with weight +Inf are never traversed; they stay in the graph
//     so a later effect removal restores passability structurally.
//
// Why:
//
//   - The engine re-runs the search after every recalculation; search
//     must be deterministic for a fixed graph and weight state. Cost
//     ties in the priority queue break by a monotone push sequence
//     number, so repeated runs expand identically.
//
// Options:
//
//   - WithHeuristicScale(s): weight units per distance unit (default 100).
//   - WithMaxIterations(n): defensive expansion cap (default 1<<20).
//
// Errors (sentinel):
//
//   - ErrNilGraph      – nil graph supplied.
//   - ErrNodeNotFound  – start or end node absent (checked before search;
//     distinct from ErrNoPath by contract).
//   - ErrNoPath        – both endpoints exist but no route connects them.
//   - ErrMaxIterations – the expansion guard tripped.
//
// Complexity:
//
//   - Time:  O((V + E) log V) with a binary heap and lazy decrease-key.
//   - Space: O(V + E).
package astar
