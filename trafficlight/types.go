// Package trafficlight: states, configuration and sentinel errors.
package trafficlight

import (
	"errors"
	"time"
)

// Sentinel errors for signal configuration.
var (
	// ErrNilClock indicates New was called without a clock.
	ErrNilClock = errors.New("trafficlight: clock is nil")

	// ErrBadDuration indicates a non-positive state duration.
	ErrBadDuration = errors.New("trafficlight: state durations must be positive")

	// ErrBadRate indicates a negative penalty rate.
	ErrBadRate = errors.New("trafficlight: penalty rates must be non-negative")
)

// State is a signal color.
type State int

const (
	// Red halts traffic; the cycle starts here by default.
	Red State = iota
	// Green lets traffic flow.
	Green
	// Yellow warns of the upcoming red.
	Yellow
)

// String returns the lowercase color name.
func (s State) String() string {
	switch s {
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// NextState returns the successor in the fixed cycle
// Red→Green→Yellow→Red. Pure; the scheduler is the only caller that
// advances a live instance.
func NextState(s State) State {
	switch s {
	case Red:
		return Green
	case Green:
		return Yellow
	default:
		return Red
	}
}

// Durations holds per-state durations in whole seconds.
type Durations struct {
	Red, Yellow, Green int
}

// of returns the duration of state s in seconds.
func (d Durations) of(s State) int {
	switch s {
	case Red:
		return d.Red
	case Yellow:
		return d.Yellow
	default:
		return d.Green
	}
}

// valid reports whether every duration is positive.
func (d Durations) valid() bool {
	return d.Red > 0 && d.Yellow > 0 && d.Green > 0
}

// Rates holds per-state penalty rates in weight units per remaining
// second. Ordering (red ≥ yellow-ish ≥ green for equal remaining time)
// is a product choice, not enforced here.
type Rates struct {
	Red, Yellow, Green float64
}

// of returns the rate of state s.
func (r Rates) of(s State) float64 {
	switch s {
	case Red:
		return r.Red
	case Yellow:
		return r.Yellow
	default:
		return r.Green
	}
}

// valid reports whether every rate is non-negative.
func (r Rates) valid() bool {
	return r.Red >= 0 && r.Yellow >= 0 && r.Green >= 0
}

// Options configures a signal instance.
type Options struct {
	// Initial is the state the instance starts in.
	Initial State

	// Durations are the per-state durations in seconds.
	Durations Durations

	// Rates are the per-state penalty rates.
	Rates Rates

	// CountdownInterval is the cadence of remaining-time notifications.
	CountdownInterval time.Duration
}

// Option is a functional option for configuring an Instance.
type Option func(*Options)

// WithInitialState sets the state the cycle starts in.
func WithInitialState(s State) Option {
	return func(o *Options) { o.Initial = s }
}

// WithDurations overrides the per-state durations. Validated by New.
func WithDurations(d Durations) Option {
	return func(o *Options) { o.Durations = d }
}

// WithRates overrides the per-state penalty rates. Validated by New.
func WithRates(r Rates) Option {
	return func(o *Options) { o.Rates = r }
}

// WithCountdownInterval overrides the remaining-time notification cadence.
func WithCountdownInterval(interval time.Duration) Option {
	return func(o *Options) { o.CountdownInterval = interval }
}

// DefaultOptions returns the stock signal configuration.
func DefaultOptions() Options {
	return Options{
		Initial:           Red,
		Durations:         Durations{Red: 30, Yellow: 5, Green: 25},
		Rates:             Rates{Red: 3.33, Yellow: 10.0, Green: 0.04},
		CountdownInterval: 500 * time.Millisecond,
	}
}
