// Package astar: result type, sentinel errors and functional options.
package astar

import "errors"

// Sentinel errors returned by FindPath.
var (
	// ErrNilGraph indicates a nil *roadgraph.Graph was supplied.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrNodeNotFound indicates the start or end node does not exist in
	// the graph. Deliberately distinct from ErrNoPath: callers report an
	// invalid selection differently from an unreachable destination.
	ErrNodeNotFound = errors.New("astar: start or end node not found")

	// ErrNoPath indicates both endpoints exist but no route connects them
	// under the current weights.
	ErrNoPath = errors.New("astar: no path between start and end")

	// ErrMaxIterations indicates the defensive expansion guard tripped.
	ErrMaxIterations = errors.New("astar: iteration limit exceeded")

	// ErrBadHeuristicScale indicates a non-positive heuristic scale.
	ErrBadHeuristicScale = errors.New("astar: HeuristicScale must be positive")

	// ErrBadMaxIterations indicates a non-positive iteration limit.
	ErrBadMaxIterations = errors.New("astar: MaxIterations must be positive")
)

// Path is a successful search result: the ordered node sequence from
// start to end inclusive, and the summed edge cost.
type Path struct {
	Nodes []string `json:"nodes"`
	Cost  float64  `json:"cost"`
}

// Options configures a single FindPath execution.
//
// HeuristicScale – weight units per unit of Euclidean distance. The
// heuristic divides straight-line distance by this scale; it must stay
// large enough that the scaled distance never exceeds real edge costs,
// or admissibility (and thus optimality) is lost.
//
// MaxIterations – upper bound on heap extractions. Graph sizes here are
// small and search is CPU-bound; the guard exists so a malformed graph
// can never spin the engine.
type Options struct {
	HeuristicScale float64
	MaxIterations  int
}

// Option is a functional option for configuring FindPath.
type Option func(*Options)

// WithHeuristicScale overrides the distance-to-weight scale.
// Panics on non-positive values (invalid configuration, fail fast).
func WithHeuristicScale(scale float64) Option {
	return func(o *Options) {
		if scale <= 0 {
			panic(ErrBadHeuristicScale.Error())
		}
		o.HeuristicScale = scale
	}
}

// WithMaxIterations overrides the defensive expansion cap.
// Panics on non-positive values.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxIterations.Error())
		}
		o.MaxIterations = n
	}
}

// DefaultOptions returns the baseline configuration:
// HeuristicScale=100 (the road weights are roughly pixel-distance/100
// derived), MaxIterations=1<<20.
func DefaultOptions() Options {
	return Options{
		HeuristicScale: 100,
		MaxIterations:  1 << 20,
	}
}
