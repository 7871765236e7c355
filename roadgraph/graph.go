// Package roadgraph: thread-safe Graph method implementations.
//
// Determinism: Nodes() and Edges() enumerate in lexicographic order of
// IDs and (From, To) keys respectively, so every derived computation
// (recalculation sweeps, searches, tests) sees a stable order.
package roadgraph

import (
	"math"
	"sort"

	"github.com/katalvlaran/dynroute/geometry"
)

// AddNode inserts a node with the given ID and position.
// Idempotent: re-adding an existing ID is a no-op and the original
// position is kept (nodes are immutable after construction).
// Returns ErrEmptyNodeID if id is empty.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string, pos geometry.Point) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		return nil
	}
	g.nodes[id] = pos

	return nil
}

// HasNode reports whether a node with the given ID exists.
// Complexity: O(1).
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, exists := g.nodes[id]

	return exists
}

// NodePos returns the position of the node with the given ID.
// Returns ErrNodeNotFound if the node does not exist.
// Complexity: O(1).
func (g *Graph) NodePos(id string) (geometry.Point, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	pos, exists := g.nodes[id]
	if !exists {
		return geometry.Point{}, ErrNodeNotFound
	}

	return pos, nil
}

// AddEdge creates the directed edge from→to with the given weight.
// Both endpoints must already exist; the (from, to) key must be unused.
// Returns ErrEmptyNodeID, ErrNodeNotFound, ErrEdgeExists or
// ErrNegativeWeight (weight < 0; +Inf is permitted).
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight float64) error {
	// 1) Input validation.
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}
	if weight < 0 {
		return ErrNegativeWeight
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Both endpoints must reference defined nodes.
	if _, exists := g.nodes[from]; !exists {
		return ErrNodeNotFound
	}
	if _, exists := g.nodes[to]; !exists {
		return ErrNodeNotFound
	}

	// 3) (from, to) keys are unique; direction distinguishes edges.
	bucket, ok := g.edges[from]
	if !ok {
		bucket = make(map[string]*edgeRecord)
		g.edges[from] = bucket
	}
	if _, dup := bucket[to]; dup {
		return ErrEdgeExists
	}

	bucket[to] = &edgeRecord{weight: weight}
	g.edgeCount++

	return nil
}

// HasEdge reports whether the directed edge from→to exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, exists := g.edges[from][to]

	return exists
}

// Weight returns the current weight of edge from→to.
// Returns ErrEdgeNotFound if the edge does not exist.
// Complexity: O(1).
func (g *Graph) Weight(from, to string) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rec, exists := g.edges[from][to]
	if !exists {
		return 0, ErrEdgeNotFound
	}

	return rec.weight, nil
}

// SetWeight overwrites the current weight of edge from→to.
// +Inf is permitted and marks the edge impassable.
// Returns ErrEdgeNotFound or ErrNegativeWeight.
// Complexity: O(1).
func (g *Graph) SetWeight(from, to string, weight float64) error {
	if weight < 0 {
		return ErrNegativeWeight
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, exists := g.edges[from][to]
	if !exists {
		return ErrEdgeNotFound
	}
	rec.weight = weight

	return nil
}

// AddToWeight adds delta to the current weight of edge from→to, clamping
// the result at 0. Adding to an impassable (+Inf) edge leaves it +Inf.
//
// Speculative calls against edges that do not exist are tolerated as
// no-ops: effect footprints are resolved geometrically and may reference
// edges that were never loaded.
// Complexity: O(1).
func (g *Graph) AddToWeight(from, to string, delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, exists := g.edges[from][to]
	if !exists {
		return
	}
	rec.weight = math.Max(0, rec.weight+delta)
}

// SnapshotOriginals captures the current weight of every edge as its
// immutable OriginalWeight. Called once after loading, before any effect
// is applied; subsequent calls are no-ops for edges already captured.
// Complexity: O(E).
func (g *Graph) SnapshotOriginals() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, bucket := range g.edges {
		for _, rec := range bucket {
			if rec.hasOriginal {
				continue
			}
			rec.original = rec.weight
			rec.hasOriginal = true
		}
	}
}

// ResetWeights restores every edge with a captured original back to that
// original weight. Edges without a snapshot are left untouched.
// This is step one of every recalculation pass.
// Complexity: O(E).
func (g *Graph) ResetWeights() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, bucket := range g.edges {
		for _, rec := range bucket {
			if rec.hasOriginal {
				rec.weight = rec.original
			}
		}
	}
}

// Nodes returns all nodes sorted by ID ascending.
// Complexity: O(V log V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, 0, len(g.nodes))
	for id, pos := range g.nodes {
		out = append(out, Node{ID: id, Pos: pos})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Edges returns all edges sorted by (From, To) ascending.
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	for from, bucket := range g.edges {
		for to, rec := range bucket {
			out = append(out, Edge{
				From:           from,
				To:             to,
				Weight:         rec.weight,
				OriginalWeight: rec.original,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

// Neighbors returns the outgoing edges of node from, sorted by To
// ascending. Returns ErrNodeNotFound if the node does not exist.
// Complexity: O(deg log deg).
func (g *Graph) Neighbors(from string) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, exists := g.nodes[from]; !exists {
		return nil, ErrNodeNotFound
	}

	bucket := g.edges[from]
	out := make([]Edge, 0, len(bucket))
	for to, rec := range bucket {
		out = append(out, Edge{
			From:           from,
			To:             to,
			Weight:         rec.weight,
			OriginalWeight: rec.original,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })

	return out, nil
}

// NodeCount returns the number of nodes. Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// EdgeCount returns the number of directed edges. Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// NearestNode returns the ID of the node closest to p, provided it lies
// within maxDist. Ties keep the lexicographically first ID (enumeration
// is sorted, comparison is strict). Returns ErrNoNearbyNode when nothing
// is close enough.
// Complexity: O(V log V).
func (g *Graph) NearestNode(p geometry.Point, maxDist float64) (string, error) {
	best := ""
	bestDist := math.Inf(1)
	for _, n := range g.Nodes() {
		if d := geometry.Distance(p, n.Pos); d < bestDist {
			best = n.ID
			bestDist = d
		}
	}
	if best == "" || bestDist > maxDist {
		return "", ErrNoNearbyNode
	}

	return best, nil
}
