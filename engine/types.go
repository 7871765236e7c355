// Package engine: sentinel errors, configuration options and result
// types for the routing engine.
package engine

import (
	"errors"

	"github.com/katalvlaran/dynroute/astar"
)

// Sentinel errors for engine operations.
var (
	// ErrNilGraph indicates New was called without a road graph.
	ErrNilGraph = errors.New("engine: graph is nil")

	// ErrNilEffect indicates AddEffect was called with a nil effect.
	ErrNilEffect = errors.New("engine: effect is nil")

	// ErrEffectNotFound indicates an unknown EffectID.
	ErrEffectNotFound = errors.New("engine: effect not found")

	// ErrNodeNotFound indicates an endpoint selection referenced a node
	// absent from the graph.
	ErrNodeNotFound = errors.New("engine: node not found")

	// ErrNoSelection indicates a path was requested with no start/end
	// selected.
	ErrNoSelection = errors.New("engine: no endpoints selected")

	// ErrNotTrafficLight indicates a signal query against an effect that
	// owns no signal instance.
	ErrNotTrafficLight = errors.New("engine: effect is not a traffic light")

	// ErrEngineClosed indicates the engine was shut down.
	ErrEngineClosed = errors.New("engine: engine closed")

	// ErrBadThreshold indicates a non-positive geometric threshold.
	ErrBadThreshold = errors.New("engine: thresholds must be positive")
)

// Options configures the engine's geometric thresholds and search scale.
//
// EffectThreshold – max distance between an edge midpoint and a drawn
// jam/light line for the edge to be affected. Proximity, not strict
// intersection, tolerates near-miss gestures.
//
// SnapThreshold – max distance for NearestNode endpoint snapping.
//
// HeuristicScale – forwarded to the path search.
type Options struct {
	EffectThreshold float64
	SnapThreshold   float64
	HeuristicScale  float64
}

// Option is a functional option for configuring the engine.
type Option func(*Options)

// WithEffectThreshold overrides the jam/light midpoint proximity bound.
// Panics on non-positive values.
func WithEffectThreshold(d float64) Option {
	return func(o *Options) {
		if d <= 0 {
			panic(ErrBadThreshold.Error())
		}
		o.EffectThreshold = d
	}
}

// WithSnapThreshold overrides the endpoint snap distance.
// Panics on non-positive values.
func WithSnapThreshold(d float64) Option {
	return func(o *Options) {
		if d <= 0 {
			panic(ErrBadThreshold.Error())
		}
		o.SnapThreshold = d
	}
}

// WithHeuristicScale overrides the search heuristic scale.
// Panics on non-positive values (same contract as astar).
func WithHeuristicScale(s float64) Option {
	return func(o *Options) {
		if s <= 0 {
			panic(astar.ErrBadHeuristicScale.Error())
		}
		o.HeuristicScale = s
	}
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		EffectThreshold: 20,
		SnapThreshold:   50,
		HeuristicScale:  100,
	}
}

// SignalStatus is a point-in-time view of a traffic light, polled by the
// presentation layer for visual feedback.
type SignalStatus struct {
	State     string `json:"state"`
	Remaining int    `json:"remaining_s"`
}

// PathResult is the surfaced outcome of the most recent search. A
// no-path condition is success-shaped: Found=false with a Reason, never
// an error to branch around.
type PathResult struct {
	Found  bool       `json:"found"`
	Path   astar.Path `json:"path,omitempty"`
	Reason string     `json:"reason,omitempty"`
}
