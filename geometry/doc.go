// Package geometry provides the pure planar predicates the routing engine
// uses to decide which road edges fall inside an effect's footprint.
//
// What:
//
//   - Point and Rect value types (screen-space coordinates, y grows down).
//   - SegmentsIntersect: orientation-based segment intersection, including
//     the four collinear/on-segment degenerate cases.
//   - PointSegmentDistance: distance from a point to a segment via clamped
//     projection, returning the closest point as well.
//   - Rect.Contains: closed containment (boundary counts as inside).
//
// Why:
//
//   - Block effects need a true crossing test against each edge segment.
//   - Jam and traffic-light effects need midpoint proximity to a drawn line.
//   - Rain effects need containment of an edge midpoint in a rectangle.
//
// All functions are pure, allocation-free and side-effect free; they are
// used only as predicates. Malformed inputs (NaN coordinates) propagate
// NaN rather than being guarded; inputs come from well-formed gestures.
//
// Complexity: every function is O(1) time, O(1) space.
package geometry
