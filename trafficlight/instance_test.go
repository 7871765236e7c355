// Package trafficlight_test drives the signal cycle on a mock clock:
// transition order, remaining-time semantics, penalty ordering,
// configuration validation and stop behavior.
package trafficlight_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/katalvlaran/dynroute/trafficlight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDurations is the short cycle used throughout: RED=2, YELLOW=1, GREEN=2.
func testDurations() trafficlight.Durations {
	return trafficlight.Durations{Red: 2, Yellow: 1, Green: 2}
}

// newTestInstance builds a started instance on a mock clock and a channel
// receiving every state transition.
func newTestInstance(t *testing.T, opts ...trafficlight.Option) (*clock.Mock, *trafficlight.Instance, <-chan trafficlight.State) {
	t.Helper()

	mock := clock.NewMock()
	inst, err := trafficlight.New(mock, append([]trafficlight.Option{
		trafficlight.WithDurations(testDurations()),
	}, opts...)...)
	require.NoError(t, err)

	changes := make(chan trafficlight.State, 16)
	inst.OnChange(func(s trafficlight.State) { changes <- s })
	inst.Start()
	t.Cleanup(inst.Stop)

	return mock, inst, changes
}

// awaitState blocks until the next transition arrives or the test fails.
func awaitState(t *testing.T, ch <-chan trafficlight.State, want trafficlight.State) {
	t.Helper()
	select {
	case got := <-ch:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for transition to %v", want)
	}
}

// ------------------------------------------------------------------------
// 1. Pure transition function.
// ------------------------------------------------------------------------

func TestNextState_FixedCycle(t *testing.T) {
	assert.Equal(t, trafficlight.Green, trafficlight.NextState(trafficlight.Red))
	assert.Equal(t, trafficlight.Yellow, trafficlight.NextState(trafficlight.Green))
	assert.Equal(t, trafficlight.Red, trafficlight.NextState(trafficlight.Yellow))
}

// ------------------------------------------------------------------------
// 2. Configuration validation.
// ------------------------------------------------------------------------

func TestNew_Validation(t *testing.T) {
	_, err := trafficlight.New(nil)
	assert.ErrorIs(t, err, trafficlight.ErrNilClock)

	mock := clock.NewMock()

	_, err = trafficlight.New(mock, trafficlight.WithDurations(trafficlight.Durations{Red: 0, Yellow: 1, Green: 1}))
	assert.ErrorIs(t, err, trafficlight.ErrBadDuration)

	_, err = trafficlight.New(mock, trafficlight.WithRates(trafficlight.Rates{Red: -1}))
	assert.ErrorIs(t, err, trafficlight.ErrBadRate)
}

// ------------------------------------------------------------------------
// 3. Signal cycle correctness on a mock clock (RED=2, YELLOW=1, GREEN=2).
// ------------------------------------------------------------------------

func TestCycle_VisitsStatesInOrder(t *testing.T) {
	mock, inst, changes := newTestInstance(t)

	assert.Equal(t, trafficlight.Red, inst.CurrentState())

	// RED runs 2s, then GREEN.
	mock.Add(2 * time.Second)
	awaitState(t, changes, trafficlight.Green)

	// GREEN runs 2s, then YELLOW.
	mock.Add(2 * time.Second)
	awaitState(t, changes, trafficlight.Yellow)

	// YELLOW runs 1s, then back to RED: the cycle closes.
	mock.Add(1 * time.Second)
	awaitState(t, changes, trafficlight.Red)

	// And around again.
	mock.Add(2 * time.Second)
	awaitState(t, changes, trafficlight.Green)
}

func TestRemainingTime_CeilAndMonotone(t *testing.T) {
	mock, inst, _ := newTestInstance(t)

	// Fresh RED: the full duration.
	assert.Equal(t, 2, inst.RemainingTime())

	// 0.2s in: ceil(1.8) = 2, still the whole second above.
	mock.Add(200 * time.Millisecond)
	assert.Equal(t, 2, inst.RemainingTime())

	// 1.2s in: ceil(0.8) = 1. Never increases within the state.
	mock.Add(1 * time.Second)
	assert.Equal(t, 1, inst.RemainingTime())
}

func TestRemainingTime_ResetsAfterTransition(t *testing.T) {
	mock, inst, changes := newTestInstance(t)

	mock.Add(2 * time.Second)
	awaitState(t, changes, trafficlight.Green)

	// Immediately after the transition the new state's full duration is
	// reported.
	assert.Equal(t, 2, inst.RemainingTime())
}

// ------------------------------------------------------------------------
// 4. Weight modifier: proportional to remaining time, ordered by state.
// ------------------------------------------------------------------------

func TestWeightModifier_ProportionalToRemaining(t *testing.T) {
	mock, inst, _ := newTestInstance(t, trafficlight.WithRates(trafficlight.Rates{Red: 3, Yellow: 10, Green: 0.5}))

	// Fresh RED, 2s remaining: 3 × 2.
	assert.InDelta(t, 6.0, inst.WeightModifier(), 1e-9)

	// 1.5s in: ceil(0.5) = 1 remaining → 3 × 1. The penalty shrinks as
	// the light approaches its change.
	mock.Add(1500 * time.Millisecond)
	assert.InDelta(t, 3.0, inst.WeightModifier(), 1e-9)
}

func TestWeightModifier_StateOrderingForEqualRemaining(t *testing.T) {
	// Same durations, same elapsed time: a red light must out-penalize a
	// green one under the default rates.
	red, err := trafficlight.New(clock.NewMock(),
		trafficlight.WithDurations(testDurations()),
		trafficlight.WithInitialState(trafficlight.Red))
	require.NoError(t, err)
	green, err := trafficlight.New(clock.NewMock(),
		trafficlight.WithDurations(testDurations()),
		trafficlight.WithInitialState(trafficlight.Green))
	require.NoError(t, err)

	assert.Greater(t, red.WeightModifier(), green.WeightModifier())
}

// ------------------------------------------------------------------------
// 5. Countdown notifications and stop semantics.
// ------------------------------------------------------------------------

func TestCountdown_Emitted(t *testing.T) {
	mock := clock.NewMock()
	inst, err := trafficlight.New(mock,
		trafficlight.WithDurations(testDurations()),
		trafficlight.WithCountdownInterval(500*time.Millisecond))
	require.NoError(t, err)

	var ticks atomic.Int64
	inst.OnCountdown(func(int) { ticks.Add(1) })
	inst.Start()
	t.Cleanup(inst.Stop)

	// The initial emission happens at Start, before any tick.
	initial := ticks.Load()
	assert.GreaterOrEqual(t, initial, int64(1))

	mock.Add(1 * time.Second)
	assert.Eventually(t, func() bool { return ticks.Load() > initial },
		2*time.Second, 5*time.Millisecond)
}

func TestStop_SilencesInstance(t *testing.T) {
	mock := clock.NewMock()
	inst, err := trafficlight.New(mock, trafficlight.WithDurations(testDurations()))
	require.NoError(t, err)

	var events atomic.Int64
	inst.OnChange(func(trafficlight.State) { events.Add(1) })
	inst.OnCountdown(func(int) { events.Add(1) })
	inst.Start()

	inst.Stop()
	inst.Stop() // idempotent

	quiesced := events.Load()
	mock.Add(30 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, quiesced, events.Load(), "stopped instance must emit nothing")
}

func TestStart_AfterStopIsNoOp(t *testing.T) {
	inst, err := trafficlight.New(clock.NewMock(), trafficlight.WithDurations(testDurations()))
	require.NoError(t, err)

	inst.Stop()
	inst.Start() // must not launch anything against the closed done channel
	assert.Equal(t, trafficlight.Red, inst.CurrentState())
}
