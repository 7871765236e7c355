// Package engine: registry and lifecycle. The recalculation pipeline
// itself lives in recalc.go.
package engine

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/katalvlaran/dynroute/roadgraph"
	"github.com/katalvlaran/dynroute/trafficlight"
)

// record is a registry entry: the effect data plus, for traffic lights,
// the owned signal instance.
type record struct {
	effect Effect
	signal *trafficlight.Instance
}

// Engine owns the road graph's derived weights, the effect registry and
// the current endpoint selection. All mutation, recalculation and search
// is serialized by a single mutex; subscriber callbacks always fire
// outside it.
type Engine struct {
	mu sync.Mutex

	g       *roadgraph.Graph
	clk     clock.Clock
	options Options

	effects map[EffectID]*record
	order   []EffectID // insertion order; the tiebreaker within an effect type

	start, end string
	selected   bool
	last       PathResult

	closed bool

	onWeights func()
	onPath    func(PathResult)
	onSignal  func(EffectID, trafficlight.State, int)
}

// New creates an engine over g. A nil clk selects the wall clock; tests
// inject a mock. Returns ErrNilGraph when g is nil.
func New(g *roadgraph.Graph, clk clock.Clock, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if clk == nil {
		clk = clock.New()
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		g:       g,
		clk:     clk,
		options: cfg,
		effects: make(map[EffectID]*record),
	}, nil
}

// OnWeightsChanged registers the subscriber notified after every
// recalculation pass.
func (e *Engine) OnWeightsChanged(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWeights = fn
}

// OnPath registers the subscriber receiving the refreshed PathResult
// after each recalculation while endpoints are selected.
func (e *Engine) OnPath(fn func(PathResult)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onPath = fn
}

// OnSignal registers the subscriber receiving traffic-light state and
// countdown updates, keyed by the owning effect.
func (e *Engine) OnSignal(fn func(EffectID, trafficlight.State, int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSignal = fn
}

// AddEffect registers an effect, recalculates and returns its opaque
// handle. For a TrafficLight the engine constructs and starts the signal
// instance; its transitions trigger further recalculations.
func (e *Engine) AddEffect(eff Effect) (EffectID, error) {
	if eff == nil {
		return "", ErrNilEffect
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()

		return "", ErrEngineClosed
	}

	id := EffectID(uuid.NewString())
	rec := &record{effect: eff}

	var signal *trafficlight.Instance
	if tl, ok := eff.(TrafficLight); ok {
		inst, err := e.newSignal(id, tl)
		if err != nil {
			e.mu.Unlock()

			return "", err
		}
		rec.signal = inst
		signal = inst
	}

	e.effects[id] = rec
	e.order = append(e.order, id)
	e.recalcLocked()
	notify := e.notifyBundleLocked()
	e.mu.Unlock()

	// Start outside the lock: the initial countdown emission runs
	// synchronously on Start and must not re-enter the engine mutex.
	if signal != nil {
		signal.Start()
	}
	notify()

	return id, nil
}

// RemoveEffect deregisters the effect and recalculates. Stopping a
// traffic light's signal is inseparable from removal and happens first,
// under the same critical section, so a removed effect can never leave a
// timer running.
func (e *Engine) RemoveEffect(id EffectID) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()

		return ErrEngineClosed
	}
	rec, ok := e.effects[id]
	if !ok {
		e.mu.Unlock()

		return ErrEffectNotFound
	}
	if rec.signal != nil {
		rec.signal.Stop()
	}
	delete(e.effects, id)
	for i, other := range e.order {
		if other == id {
			e.order = append(e.order[:i], e.order[i+1:]...)

			break
		}
	}
	e.recalcLocked()
	notify := e.notifyBundleLocked()
	e.mu.Unlock()

	notify()

	return nil
}

// Recalculate re-derives every edge weight from its original plus the
// active effect set, then re-runs the search if endpoints are selected.
// Idempotent: consecutive calls with no intervening change produce
// identical weights. Serves as the manual "find path" trigger as well.
func (e *Engine) Recalculate() {
	e.mu.Lock()
	e.recalcLocked()
	notify := e.notifyBundleLocked()
	e.mu.Unlock()

	notify()
}

// SelectEndpoints sets the start and end nodes and immediately
// recalculates (and therefore searches). Returns ErrNodeNotFound if
// either node is absent.
func (e *Engine) SelectEndpoints(start, end string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()

		return ErrEngineClosed
	}
	if !e.g.HasNode(start) {
		e.mu.Unlock()

		return fmt.Errorf("%w: %q", ErrNodeNotFound, start)
	}
	if !e.g.HasNode(end) {
		e.mu.Unlock()

		return fmt.Errorf("%w: %q", ErrNodeNotFound, end)
	}
	e.start, e.end, e.selected = start, end, true
	e.recalcLocked()
	notify := e.notifyBundleLocked()
	e.mu.Unlock()

	notify()

	return nil
}

// ClearEndpoints drops the selection and the stale path result.
func (e *Engine) ClearEndpoints() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.start, e.end, e.selected = "", "", false
	e.last = PathResult{}
}

// CurrentPath returns the most recent search outcome. ErrNoSelection is
// returned when no endpoints are selected; a no-path condition is not an
// error but a PathResult with Found=false.
func (e *Engine) CurrentPath() (PathResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.selected {
		return PathResult{}, ErrNoSelection
	}

	return e.last, nil
}

// Effect returns the registered effect data for the handle.
func (e *Engine) Effect(id EffectID) (Effect, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.effects[id]
	if !ok {
		return nil, ErrEffectNotFound
	}

	return rec.effect, nil
}

// EffectIDs returns all handles in insertion order.
func (e *Engine) EffectIDs() []EffectID {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]EffectID, len(e.order))
	copy(out, e.order)

	return out
}

// SignalState returns the current color and remaining seconds of a
// traffic-light effect, for presentation-layer polling.
func (e *Engine) SignalState(id EffectID) (trafficlight.State, int, error) {
	e.mu.Lock()
	rec, ok := e.effects[id]
	e.mu.Unlock()

	if !ok {
		return 0, 0, ErrEffectNotFound
	}
	if rec.signal == nil {
		return 0, 0, ErrNotTrafficLight
	}

	return rec.signal.CurrentState(), rec.signal.RemainingTime(), nil
}

// Options returns a copy of the engine's configuration.
func (e *Engine) Options() Options { return e.options }

// Endpoints returns the current selection; ok is false when none is
// active.
func (e *Engine) Endpoints() (start, end string, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.start, e.end, e.selected
}

// Graph exposes the underlying road graph for read-side collaborators
// (endpoint snapping, rendering). Collaborators must never mutate it
// directly; all weight changes flow through the effect contract.
func (e *Engine) Graph() *roadgraph.Graph { return e.g }

// Close stops every signal instance and rejects further mutation.
// Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	for _, rec := range e.effects {
		if rec.signal != nil {
			rec.signal.Stop()
		}
	}
}

// newSignal builds and wires the signal instance owned by a
// traffic-light effect. Zero-value durations/rates select the defaults.
func (e *Engine) newSignal(id EffectID, tl TrafficLight) (*trafficlight.Instance, error) {
	var opts []trafficlight.Option
	if tl.Durations != (trafficlight.Durations{}) {
		opts = append(opts, trafficlight.WithDurations(tl.Durations))
	}
	if tl.Rates != (trafficlight.Rates{}) {
		opts = append(opts, trafficlight.WithRates(tl.Rates))
	}

	inst, err := trafficlight.New(e.clk, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: traffic light signal: %w", err)
	}

	inst.OnChange(func(s trafficlight.State) { e.handleSignalChange(id, s) })
	inst.OnCountdown(func(remaining int) {
		e.emitSignal(id, inst.CurrentState(), remaining)
	})

	return inst, nil
}

// handleSignalChange is the engine's recalculation trigger for signal
// transitions. It runs on the signal goroutine and queues on the engine
// mutex like any other event, so it can never interrupt an in-progress
// recalculation.
func (e *Engine) handleSignalChange(id EffectID, s trafficlight.State) {
	e.mu.Lock()
	rec, ok := e.effects[id]
	if e.closed || !ok {
		e.mu.Unlock()

		return
	}
	e.recalcLocked()
	notify := e.notifyBundleLocked()
	remaining := rec.signal.RemainingTime()
	e.mu.Unlock()

	notify()
	e.emitSignal(id, s, remaining)
}

// emitSignal forwards a signal update to the subscriber, if any.
func (e *Engine) emitSignal(id EffectID, s trafficlight.State, remaining int) {
	e.mu.Lock()
	fn := e.onSignal
	closed := e.closed
	e.mu.Unlock()

	if fn != nil && !closed {
		fn(id, s, remaining)
	}
}

// notifyBundleLocked snapshots the subscribers and the fresh result so
// the caller can notify after releasing the mutex.
func (e *Engine) notifyBundleLocked() func() {
	onWeights, onPath := e.onWeights, e.onPath
	res, selected := e.last, e.selected

	return func() {
		if onWeights != nil {
			onWeights()
		}
		if selected && onPath != nil {
			onPath(res)
		}
	}
}
