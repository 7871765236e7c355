// Package roadgraph defines the directed weighted road network the
// routing engine operates on, and a partial-failure-tolerant SQLite
// loader for it.
//
// What:
//
//   - Node: immutable identifier + planar position, set at construction.
//   - Edge: ordered (from, to) pair with a mutable Weight and an immutable
//     OriginalWeight captured once by SnapshotOriginals. A weight of
//     math.Inf(1) means impassable; the edge stays in the graph so that a
//     later effect removal restores passability without re-adding it.
//   - Graph: thread-safe add/query/mutate operations with deterministic,
//     sorted Nodes()/Edges() enumeration.
//   - LoadSQLite: reads the nodes(name,x,y) and edges(node_from,node_to,
//     weight) tables, skipping malformed rows with a logged warning and
//     reporting skip counts instead of aborting the load.
//
// Why:
//
//   - The recalculation pipeline derives every current weight from
//     OriginalWeight plus the active effect set. ResetWeights is the first
//     step of every recalculation; weights are never incrementally
//     drifted, so the snapshot is the single recovery point.
//
// Concurrency:
//
//   - A single RWMutex guards topology and weights. The engine
//     additionally serializes whole recalculation passes with its own
//     mutex; the graph lock only protects individual operations.
//
// Errors:
//
//   - ErrEmptyNodeID    – node or edge endpoint ID is the empty string.
//   - ErrNodeNotFound   – requested node does not exist.
//   - ErrEdgeNotFound   – requested edge does not exist.
//   - ErrEdgeExists     – an edge with the same (from, to) key exists.
//   - ErrNegativeWeight – negative (and non-infinite) weight supplied.
//   - ErrNoNearbyNode   – no node within the snap threshold.
//
// Complexity: all single-element operations are O(1); Nodes(), Edges()
// and ResetWeights are O(V log V) / O(E log E) / O(E).
package roadgraph
