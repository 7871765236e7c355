// Package dynroute is a dynamic weighted routing engine: shortest routes
// over a static road network whose edge costs are perturbed at runtime by
// geometrically-scoped effects: traffic jams, rain zones, road blocks and
// periodic traffic lights.
//
// 🚦 What is dynroute?
//
//	A small, deterministic engine that brings together:
//		• geometry/     — pure planar predicates: segment intersection, point↔segment distance, rect containment
//		• roadgraph/    — directed weighted road graph with positioned nodes, original-weight snapshots and a SQLite loader
//		• astar/        — A* shortest paths with a Euclidean admissible heuristic and deterministic tie-breaking
//		• trafficlight/ — the RED→GREEN→YELLOW signal state machine on an injectable clock
//		• engine/       — effect registry + reset-then-reapply recalculation pipeline + automatic re-search
//		• server/       — HTTP/WebSocket surface for effect placement, endpoint selection and live results
//
// ✨ Why dynroute?
//
//   - Drift-free weights – every recalculation derives current costs from
//     immutable originals plus the active effect set; nothing is patched
//     incrementally, so a weight can never double-apply or leak a delta.
//   - Deterministic – sorted enumeration, sequenced tie-breaking in the
//     search heap, mock-clock signal tests.
//   - Single-owner concurrency – one mutex serializes mutation,
//     recalculation and search; timer callbacks queue like any other event.
//
// Quick ASCII example:
//
//	A────B
//	 \   │       block A→B, recalculate, and the search
//	  \  │       detours straight to A→C
//	   \ C
//
// Dive into the package docs for options, error taxonomies and runnable
// examples.
//
//	go get github.com/katalvlaran/dynroute
package dynroute
