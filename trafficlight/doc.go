// Package trafficlight implements the timed three-state signal machine
// backing a traffic-light effect.
//
// What:
//
//   - State: Red, Green, Yellow. NextState is the pure cyclic transition
//     Red→Green→Yellow→Red; no other transitions exist.
//   - Instance: a running signal. On entering a state it schedules a
//     one-shot transition timer for that state's duration and a periodic
//     countdown notification (for display only). On firing, it advances
//     the cycle, resets the state clock, reschedules both timers and
//     notifies the OnChange subscriber; the engine treats that
//     notification as a recalculation trigger.
//   - WeightModifier: rate[state] × remaining seconds. A fresh red light
//     penalizes heavily; a red light about to turn green penalizes
//     lightly, steering the search toward lights that are almost done.
//
// Why an injected clock:
//
//   - Timing mechanism and state logic are deliberately decoupled: the
//     transition function is pure, and the scheduler runs on a
//     clock.Clock, so tests drive the full cycle with a mock clock and
//     zero wall-time.
//
// Lifecycle:
//
//   - New validates configuration, Start launches the schedule, Stop
//     cancels both timers. Stop is idempotent and must always be called
//     when the owning effect is removed or the engine shuts down; a
//     running instance that outlives its effect keeps firing against
//     state nobody owns. A stopped instance emits nothing further.
//
// Errors:
//
//   - ErrNilClock    – no clock supplied.
//   - ErrBadDuration – a state duration is not a positive whole second.
//   - ErrBadRate     – a penalty rate is negative.
//
// Defaults (overridable via options; tuning is product, not correctness):
// durations RED=30s YELLOW=5s GREEN=25s, rates RED=3.33 YELLOW=10.0
// GREEN=0.04 penalty units per remaining second, countdown every 500ms.
package trafficlight
