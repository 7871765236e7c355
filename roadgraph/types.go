// Package roadgraph: central types, sentinel errors and the Graph
// constructor. Method implementations live in graph.go; the SQLite
// loader lives in loader.go.
package roadgraph

import (
	"errors"
	"sync"

	"github.com/katalvlaran/dynroute/geometry"
)

// Sentinel errors for road graph operations.
var (
	// ErrEmptyNodeID indicates an empty node identifier was supplied.
	ErrEmptyNodeID = errors.New("roadgraph: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("roadgraph: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("roadgraph: edge not found")

	// ErrEdgeExists indicates an edge with the same (from, to) key already exists.
	ErrEdgeExists = errors.New("roadgraph: edge already exists")

	// ErrNegativeWeight indicates a negative, non-infinite weight was supplied.
	ErrNegativeWeight = errors.New("roadgraph: negative edge weight")

	// ErrNoNearbyNode indicates no node lies within the snap threshold.
	ErrNoNearbyNode = errors.New("roadgraph: no node within snap threshold")
)

// Node is an intersection: an identifier plus a planar position.
// Nodes are immutable after graph construction.
type Node struct {
	// ID uniquely identifies this node within its Graph.
	ID string

	// Pos is the node's 2-D position.
	Pos geometry.Point
}

// Edge is a directed road segment. Weight is the current traversal cost;
// OriginalWeight is the load-time cost restored by ResetWeights.
// math.Inf(1) as Weight denotes an impassable edge.
type Edge struct {
	// From is the source node ID.
	From string

	// To is the destination node ID.
	To string

	// Weight is the current traversal cost (≥ 0, or +Inf).
	Weight float64

	// OriginalWeight is the immutable cost captured by SnapshotOriginals.
	// Zero until the snapshot is taken; see HasOriginal on the record.
	OriginalWeight float64
}

// edgeRecord is the internal mutable state of a directed edge.
type edgeRecord struct {
	weight      float64
	original    float64
	hasOriginal bool
}

// Graph is the in-memory road network. Directed; edges are uniquely
// keyed by (from, to); no self-loops, no parallel edges.
type Graph struct {
	mu sync.RWMutex

	nodes map[string]geometry.Point
	// edges[from][to] = record
	edges     map[string]map[string]*edgeRecord
	edgeCount int
}

// NewGraph creates an empty road graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]geometry.Point),
		edges: make(map[string]map[string]*edgeRecord),
	}
}
