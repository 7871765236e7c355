// Package engine owns the effect registry and the recalculation pipeline
// that keeps derived edge weights consistent with the set of active
// effects, plus the path-search orchestration on top of them.
//
// What:
//
//   - Effect: the tagged union of user-placed overlays: TrafficJam
//     (line + delta), Rain (rect + delta), Block (line, forces +Inf) and
//     TrafficLight (line + an owned signal instance).
//   - AddEffect / RemoveEffect: registry mutation by opaque EffectID.
//     Removing a traffic light stops its signal before deregistration;
//     the two are inseparable so a removed effect can never leak a
//     running timer.
//   - Recalculate: the reset-then-reapply pass. Every edge with a stored
//     original is restored first, then every active effect reapplies its
//     delta in the fixed type order TrafficJam → Rain → Block →
//     TrafficLight (insertion order within a type). Deltas clamp at 0;
//     any edge already at +Inf is skipped by delta application, so a
//     Block always wins. If endpoints are selected the search re-runs
//     immediately; otherwise the stale result is cleared.
//
// Why reset-then-reapply:
//
//   - Current weight is always derivable purely from the original weight
//     and the active effect set. There is no incremental add/subtract
//     bookkeeping to drift or double-apply; the single most important
//     invariant in this engine. Recalculation is idempotent and total.
//
// Geometric footprints:
//
//   - Jams and lights affect every edge whose midpoint lies within
//     EffectThreshold of the drawn line (proximity tolerates near-miss
//     gestures); Blocks affect every edge whose segment truly crosses
//     the drawn line.
//
// Concurrency:
//
//   - One mutex serializes registry mutation, recalculation and search.
//     Signal transitions arrive as callbacks on the signal goroutine and
//     queue on the same mutex, so a recalculation always runs to
//     completion before the next trigger is processed. Subscriber
//     callbacks fire outside the lock.
//
// Errors:
//
//   - ErrNilGraph, ErrNilEffect, ErrEffectNotFound, ErrNodeNotFound,
//     ErrNoSelection, ErrNotTrafficLight, ErrEngineClosed.
//
// Complexity: Recalculate is O(E × effects) geometry tests plus one
// O((V+E) log V) search; graphs here are small.
package engine
