// Package trafficlight: the running signal instance. State logic lives in
// NextState; this file is the scheduler adapter around it.
package trafficlight

import (
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Instance is a live traffic-light signal. Create with New, subscribe
// with OnChange/OnCountdown, then Start. Stop cancels both timers and is
// idempotent; a stopped instance emits nothing further.
type Instance struct {
	mu sync.Mutex

	clk     clock.Clock
	options Options

	state      State
	stateStart time.Time

	transition *clock.Timer
	countdown  *clock.Ticker
	done       chan struct{}
	started    bool
	stopped    bool

	onChange    func(State)
	onCountdown func(int)
}

// New builds a signal instance on the given clock.
// Returns ErrNilClock, ErrBadDuration or ErrBadRate on invalid
// configuration; the instance is inert until Start.
func New(clk clock.Clock, opts ...Option) (*Instance, error) {
	if clk == nil {
		return nil, ErrNilClock
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.Durations.valid() {
		return nil, ErrBadDuration
	}
	if !cfg.Rates.valid() {
		return nil, ErrBadRate
	}

	return &Instance{
		clk:     clk,
		options: cfg,
		state:   cfg.Initial,
		done:    make(chan struct{}),
	}, nil
}

// OnChange registers the state-transition subscriber. Must be called
// before Start. The callback runs on the instance's goroutine; the
// engine uses it as its recalculation trigger.
func (i *Instance) OnChange(fn func(State)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onChange = fn
}

// OnCountdown registers the periodic remaining-time subscriber (display
// only). Must be called before Start.
func (i *Instance) OnCountdown(fn func(int)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onCountdown = fn
}

// Start launches the schedule: a one-shot transition timer for the
// current state and the periodic countdown ticker. Calling Start on a
// running or stopped instance is a no-op.
func (i *Instance) Start() {
	i.mu.Lock()
	if i.started || i.stopped {
		i.mu.Unlock()

		return
	}
	i.started = true
	i.stateStart = i.clk.Now()
	i.transition = i.clk.Timer(time.Duration(i.options.Durations.of(i.state)) * time.Second)
	i.countdown = i.clk.Ticker(i.options.CountdownInterval)
	i.mu.Unlock()

	// Initial remaining time is emitted immediately, before any tick.
	i.emitCountdown()

	go i.loop()
}

// Stop cancels both timers. Idempotent and safe to call at any time;
// after Stop returns no further notifications are emitted.
func (i *Instance) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stopped {
		return
	}
	i.stopped = true
	close(i.done)
	if i.transition != nil {
		i.transition.Stop()
	}
	if i.countdown != nil {
		i.countdown.Stop()
	}
}

// CurrentState returns the current color.
func (i *Instance) CurrentState() State {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.state
}

// RemainingTime returns the whole seconds left in the current state:
// ceil(duration − elapsed), floored at 0. Monotonically non-increasing
// within a state; resets to the new duration right after a transition.
func (i *Instance) RemainingTime() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.remainingLocked()
}

func (i *Instance) remainingLocked() int {
	duration := float64(i.options.Durations.of(i.state))
	if !i.started {
		return int(duration)
	}
	elapsed := i.clk.Since(i.stateStart).Seconds()
	remaining := math.Ceil(duration - elapsed)
	if remaining < 0 {
		return 0
	}

	return int(remaining)
}

// WeightModifier returns the current routing penalty:
// rate[state] × remaining seconds. Shrinks toward zero as the state is
// about to end.
func (i *Instance) WeightModifier() float64 {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.options.Rates.of(i.state) * float64(i.remainingLocked())
}

// loop is the instance goroutine: it serializes transition and countdown
// events until Stop.
func (i *Instance) loop() {
	for {
		select {
		case <-i.transition.C:
			i.advance()
		case <-i.countdown.C:
			i.emitCountdown()
		case <-i.done:
			return
		}
	}
}

// advance moves to the next state in the cycle, resets the state clock,
// reschedules the transition timer and notifies subscribers.
func (i *Instance) advance() {
	i.mu.Lock()
	if i.stopped {
		i.mu.Unlock()

		return
	}
	i.state = NextState(i.state)
	i.stateStart = i.clk.Now()
	i.transition.Reset(time.Duration(i.options.Durations.of(i.state)) * time.Second)
	i.countdown.Reset(i.options.CountdownInterval)
	next := i.state
	changed := i.onChange
	i.mu.Unlock()

	// The fresh duration is announced immediately after the transition.
	i.emitCountdown()
	if changed != nil {
		changed(next)
	}
}

func (i *Instance) emitCountdown() {
	i.mu.Lock()
	if i.stopped {
		i.mu.Unlock()

		return
	}
	fn := i.onCountdown
	remaining := i.remainingLocked()
	i.mu.Unlock()

	if fn != nil {
		fn(remaining)
	}
}
