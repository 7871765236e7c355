// Package astar: the search implementation. The structure mirrors the
// classic open-set loop: pop the lowest f-score node, finalize it, relax
// outgoing edges with a lazy decrease-key heap.
package astar

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/dynroute/geometry"
	"github.com/katalvlaran/dynroute/roadgraph"
)

// FindPath computes the cheapest route from start to end over the current
// edge weights of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. start and end must both exist in g (ErrNodeNotFound).
//
// Impassable edges (weight = +Inf) are skipped during relaxation. Cost
// ties break by push order, so results are deterministic for a fixed
// graph and weight state.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func FindPath(g *roadgraph.Graph, start, end string, opts ...Option) (Path, error) {
	// 1) Build and validate options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs. Node-not-found is surfaced before any search
	//    work and is a different failure class from no-path.
	if g == nil {
		return Path{}, ErrNilGraph
	}
	if !g.HasNode(start) || !g.HasNode(end) {
		return Path{}, ErrNodeNotFound
	}

	goal, err := g.NodePos(end)
	if err != nil {
		return Path{}, fmt.Errorf("astar: goal position: %w", err)
	}

	r := &runner{
		g:       g,
		options: cfg,
		goal:    goal,
		start:   start,
		end:     end,
		gScore:  map[string]float64{start: 0},
		prev:    make(map[string]string),
		closed:  make(map[string]bool),
	}

	return r.run()
}

// runner holds the mutable state of a single search execution.
type runner struct {
	g       *roadgraph.Graph
	options Options
	goal    geometry.Point
	start   string
	end     string

	gScore map[string]float64 // best known cost from start
	prev   map[string]string  // predecessor on the best known route
	closed map[string]bool    // finalized nodes
	pq     nodePQ
	seq    int // monotone push counter for deterministic tie-breaking
}

// heuristic returns the admissible estimate of the remaining cost from
// the node at pos to the goal.
func (r *runner) heuristic(pos geometry.Point) float64 {
	return geometry.Distance(pos, r.goal) / r.options.HeuristicScale
}

// run drives the open-set loop to completion.
func (r *runner) run() (Path, error) {
	// 1) Seed the heap with the start node.
	heap.Init(&r.pq)
	startPos, err := r.g.NodePos(r.start)
	if err != nil {
		return Path{}, fmt.Errorf("astar: start position: %w", err)
	}
	r.push(r.start, r.heuristic(startPos))

	// 2) Expand until the goal is finalized or the frontier is empty.
	iterations := 0
	for r.pq.Len() > 0 {
		iterations++
		if iterations > r.options.MaxIterations {
			return Path{}, ErrMaxIterations
		}

		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Stale heap entry under lazy decrease-key: already finalized.
		if r.closed[u] {
			continue
		}
		r.closed[u] = true

		// Goal reached: its g-score is now final and minimal.
		if u == r.end {
			return r.reconstruct(), nil
		}

		if err = r.relax(u); err != nil {
			return Path{}, err
		}
	}

	return Path{}, ErrNoPath
}

// relax attempts to improve the route to each neighbor of u.
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("astar: neighbors of %q: %w", u, err)
	}

	for _, e := range neighbors {
		// Impassable edges are excluded from traversal, never removed.
		if math.IsInf(e.Weight, 1) {
			continue
		}

		tentative := r.gScore[u] + e.Weight

		current, seen := r.gScore[e.To]
		if seen && tentative >= current {
			continue
		}

		r.gScore[e.To] = tentative
		r.prev[e.To] = u

		pos, posErr := r.g.NodePos(e.To)
		if posErr != nil {
			return fmt.Errorf("astar: position of %q: %w", e.To, posErr)
		}
		r.push(e.To, tentative+r.heuristic(pos))
	}

	return nil
}

// push adds a heap entry with the next sequence number.
func (r *runner) push(id string, f float64) {
	r.seq++
	heap.Push(&r.pq, &nodeItem{id: id, f: f, seq: r.seq})
}

// reconstruct walks the predecessor chain backwards from the goal.
func (r *runner) reconstruct() Path {
	nodes := []string{r.end}
	for at := r.end; at != r.start; {
		at = r.prev[at]
		nodes = append(nodes, at)
	}
	// Reverse in place: the chain was collected goal→start.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return Path{Nodes: nodes, Cost: r.gScore[r.end]}
}

// nodeItem is a frontier entry: node id, f-score (g + heuristic) and the
// push sequence number used to break cost ties deterministically.
type nodeItem struct {
	id  string
	f   float64
	seq int
}

// nodePQ is a min-heap of *nodeItem ordered by f ascending, then by
// insertion order. Lazy decrease-key: improved routes push duplicates;
// stale entries are skipped when popped via the closed set.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
