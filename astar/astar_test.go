// Package astar_test validates search correctness: validation order,
// optimal routes, impassable-edge exclusion, the node-not-found vs
// no-path distinction, determinism and heuristic admissibility under
// sampled random weights.
package astar_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/dynroute/astar"
	"github.com/katalvlaran/dynroute/geometry"
	"github.com/katalvlaran/dynroute/roadgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTriangle constructs the canonical scenario graph:
// A(0,0)→B(10,0) w10, B→C(10,10) w10, A→C w30.
func buildTriangle(t *testing.T) *roadgraph.Graph {
	t.Helper()
	g := roadgraph.NewGraph()
	require.NoError(t, g.AddNode("A", geometry.Point{X: 0, Y: 0}))
	require.NoError(t, g.AddNode("B", geometry.Point{X: 10, Y: 0}))
	require.NoError(t, g.AddNode("C", geometry.Point{X: 10, Y: 10}))
	require.NoError(t, g.AddEdge("A", "B", 10))
	require.NoError(t, g.AddEdge("B", "C", 10))
	require.NoError(t, g.AddEdge("A", "C", 30))

	return g
}

// ------------------------------------------------------------------------
// 1. Validation: nil graph and missing endpoints fail before searching.
// ------------------------------------------------------------------------

func TestFindPath_NilGraph(t *testing.T) {
	_, err := astar.FindPath(nil, "A", "B")
	assert.ErrorIs(t, err, astar.ErrNilGraph)
}

func TestFindPath_NodeNotFound(t *testing.T) {
	g := buildTriangle(t)

	_, err := astar.FindPath(g, "ghost", "C")
	assert.ErrorIs(t, err, astar.ErrNodeNotFound)

	_, err = astar.FindPath(g, "A", "ghost")
	assert.ErrorIs(t, err, astar.ErrNodeNotFound)

	// Empty IDs are absent nodes, same class.
	_, err = astar.FindPath(g, "", "C")
	assert.ErrorIs(t, err, astar.ErrNodeNotFound)
}

func TestFindPath_NoPathIsDistinct(t *testing.T) {
	g := buildTriangle(t)
	// D exists but nothing reaches it: ErrNoPath, not ErrNodeNotFound.
	require.NoError(t, g.AddNode("D", geometry.Point{X: 50, Y: 50}))

	_, err := astar.FindPath(g, "A", "D")
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.NotErrorIs(t, err, astar.ErrNodeNotFound)
}

// ------------------------------------------------------------------------
// 2. Correctness on small graphs.
// ------------------------------------------------------------------------

func TestFindPath_PrefersCheaperDetour(t *testing.T) {
	g := buildTriangle(t)

	p, err := astar.FindPath(g, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, p.Nodes)
	assert.InDelta(t, 20.0, p.Cost, 1e-9)
}

func TestFindPath_DirectednessRespected(t *testing.T) {
	g := buildTriangle(t)

	// All edges point away from A; C cannot reach A.
	_, err := astar.FindPath(g, "C", "A")
	assert.ErrorIs(t, err, astar.ErrNoPath)
}

func TestFindPath_StartEqualsEnd(t *testing.T) {
	g := buildTriangle(t)

	p, err := astar.FindPath(g, "A", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, p.Nodes)
	assert.Zero(t, p.Cost)
}

func TestFindPath_InfEdgeNeverSelected(t *testing.T) {
	g := buildTriangle(t)
	require.NoError(t, g.SetWeight("A", "B", math.Inf(1)))

	// The cheap route is impassable; the search takes the direct edge.
	p, err := astar.FindPath(g, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, p.Nodes)
	assert.InDelta(t, 30.0, p.Cost, 1e-9)

	// Blocking the direct edge too leaves no route at all.
	require.NoError(t, g.SetWeight("A", "C", math.Inf(1)))
	_, err = astar.FindPath(g, "A", "C")
	assert.ErrorIs(t, err, astar.ErrNoPath)
}

// ------------------------------------------------------------------------
// 3. Options and guards.
// ------------------------------------------------------------------------

func TestOptions_PanicOnInvalid(t *testing.T) {
	assert.Panics(t, func() { astar.WithHeuristicScale(0) })
	assert.Panics(t, func() { astar.WithHeuristicScale(-1) })
	assert.Panics(t, func() { astar.WithMaxIterations(0) })
}

func TestFindPath_MaxIterationsGuard(t *testing.T) {
	g := buildTriangle(t)

	_, err := astar.FindPath(g, "A", "C", astar.WithMaxIterations(1))
	assert.ErrorIs(t, err, astar.ErrMaxIterations)
}

// ------------------------------------------------------------------------
// 4. Determinism: identical inputs expand identically.
// ------------------------------------------------------------------------

func TestFindPath_DeterministicUnderTies(t *testing.T) {
	// Two geometrically identical routes A→B1→C and A→B2→C with equal
	// costs: repeated searches must return the same node sequence.
	g := roadgraph.NewGraph()
	require.NoError(t, g.AddNode("A", geometry.Point{X: 0, Y: 0}))
	require.NoError(t, g.AddNode("B1", geometry.Point{X: 5, Y: 5}))
	require.NoError(t, g.AddNode("B2", geometry.Point{X: 5, Y: -5}))
	require.NoError(t, g.AddNode("C", geometry.Point{X: 10, Y: 0}))
	require.NoError(t, g.AddEdge("A", "B1", 7))
	require.NoError(t, g.AddEdge("A", "B2", 7))
	require.NoError(t, g.AddEdge("B1", "C", 7))
	require.NoError(t, g.AddEdge("B2", "C", 7))

	first, err := astar.FindPath(g, "A", "C")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, rerr := astar.FindPath(g, "A", "C")
		require.NoError(t, rerr)
		assert.Equal(t, first.Nodes, again.Nodes, "run %d", i)
	}
}

// ------------------------------------------------------------------------
// 5. Heuristic admissibility: for sampled weight assignments at or above
//    the distance-derived floor, the scaled Euclidean estimate never
//    exceeds the true cost, so A* agrees with plain Dijkstra (simulated
//    here by a huge heuristic scale that zeroes the estimate).
// ------------------------------------------------------------------------

func TestHeuristic_AdmissibleOnRandomWeights(t *testing.T) {
	const (
		nodes = 12
		scale = 100.0
	)
	r := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		g := roadgraph.NewGraph()
		pos := make(map[string]geometry.Point, nodes)
		for i := 0; i < nodes; i++ {
			id := fmt.Sprintf("V%d", i)
			p := geometry.Point{X: r.Float64() * 1000, Y: r.Float64() * 1000}
			pos[id] = p
			require.NoError(t, g.AddNode(id, p))
		}
		// Chain for connectivity, then random extras. Every weight is at
		// least the scaled distance between its endpoints (the floor that
		// makes the heuristic admissible).
		addEdge := func(u, v string) {
			floor := geometry.Distance(pos[u], pos[v]) / scale
			_ = g.AddEdge(u, v, floor+r.Float64()*50)
		}
		for i := 1; i < nodes; i++ {
			addEdge(fmt.Sprintf("V%d", i-1), fmt.Sprintf("V%d", i))
		}
		for i := 0; i < nodes*2; i++ {
			u := fmt.Sprintf("V%d", r.Intn(nodes))
			v := fmt.Sprintf("V%d", r.Intn(nodes))
			if u != v {
				addEdge(u, v)
			}
		}

		// Reference cost: heuristic forced to ~0 (plain Dijkstra).
		ref, err := astar.FindPath(g, "V0", fmt.Sprintf("V%d", nodes-1),
			astar.WithHeuristicScale(math.MaxFloat64))
		require.NoError(t, err)

		got, err := astar.FindPath(g, "V0", fmt.Sprintf("V%d", nodes-1),
			astar.WithHeuristicScale(scale))
		require.NoError(t, err)

		// An admissible heuristic must not change the optimal cost.
		assert.InDelta(t, ref.Cost, got.Cost, 1e-6, "trial %d", trial)
	}
}
