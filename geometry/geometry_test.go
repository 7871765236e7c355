// Package geometry_test validates the planar predicates: the general and
// degenerate branches of segment intersection, projection clamping in
// point-to-segment distance, and closed rectangle containment.
package geometry_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dynroute/geometry"
	"github.com/stretchr/testify/assert"
)

// ------------------------------------------------------------------------
// 1. SegmentsIntersect: general case, touching endpoints, collinear overlap.
// ------------------------------------------------------------------------

func TestSegmentsIntersect_GeneralCrossing(t *testing.T) {
	// A plain X crossing: (0,0)-(10,10) and (0,10)-(10,0).
	assert.True(t, geometry.SegmentsIntersect(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 10},
		geometry.Point{X: 0, Y: 10}, geometry.Point{X: 10, Y: 0},
	))
}

func TestSegmentsIntersect_Disjoint(t *testing.T) {
	// Two parallel horizontal segments never meet.
	assert.False(t, geometry.SegmentsIntersect(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 0},
		geometry.Point{X: 0, Y: 5}, geometry.Point{X: 10, Y: 5},
	))
}

func TestSegmentsIntersect_TouchingEndpoint(t *testing.T) {
	// Second segment starts exactly where the first ends.
	assert.True(t, geometry.SegmentsIntersect(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 5, Y: 5},
		geometry.Point{X: 5, Y: 5}, geometry.Point{X: 10, Y: 0},
	))
}

func TestSegmentsIntersect_TEndpointOnInterior(t *testing.T) {
	// Endpoint of one segment lies on the interior of the other (T shape).
	assert.True(t, geometry.SegmentsIntersect(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 0},
		geometry.Point{X: 5, Y: 0}, geometry.Point{X: 5, Y: 7},
	))
}

func TestSegmentsIntersect_CollinearOverlap(t *testing.T) {
	// Collinear segments sharing a sub-range must intersect.
	assert.True(t, geometry.SegmentsIntersect(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 0},
		geometry.Point{X: 4, Y: 0}, geometry.Point{X: 14, Y: 0},
	))
}

func TestSegmentsIntersect_CollinearDisjoint(t *testing.T) {
	// Collinear but separated segments do not intersect.
	assert.False(t, geometry.SegmentsIntersect(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 3, Y: 0},
		geometry.Point{X: 5, Y: 0}, geometry.Point{X: 9, Y: 0},
	))
}

// ------------------------------------------------------------------------
// 2. PointSegmentDistance: interior projection, clamped ends, degenerate.
// ------------------------------------------------------------------------

func TestPointSegmentDistance_InteriorProjection(t *testing.T) {
	// Point directly above the middle of a horizontal segment.
	d, closest := geometry.PointSegmentDistance(
		geometry.Point{X: 5, Y: 4},
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 10, Y: 0},
	)
	assert.InDelta(t, 4.0, d, 1e-12)
	assert.InDelta(t, 5.0, closest.X, 1e-12)
	assert.InDelta(t, 0.0, closest.Y, 1e-12)
}

func TestPointSegmentDistance_ClampsToStart(t *testing.T) {
	// Projection parameter t < 0 clamps to a.
	d, closest := geometry.PointSegmentDistance(
		geometry.Point{X: -3, Y: 4},
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 10, Y: 0},
	)
	assert.InDelta(t, 5.0, d, 1e-12) // 3-4-5 triangle
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, closest)
}

func TestPointSegmentDistance_ClampsToEnd(t *testing.T) {
	// Projection parameter t > 1 clamps to b.
	d, closest := geometry.PointSegmentDistance(
		geometry.Point{X: 13, Y: -4},
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 10, Y: 0},
	)
	assert.InDelta(t, 5.0, d, 1e-12)
	assert.Equal(t, geometry.Point{X: 10, Y: 0}, closest)
}

func TestPointSegmentDistance_DegenerateSegment(t *testing.T) {
	// a == b: distance to the single point.
	d, closest := geometry.PointSegmentDistance(
		geometry.Point{X: 3, Y: 4},
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 0, Y: 0},
	)
	assert.InDelta(t, 5.0, d, 1e-12)
	assert.Equal(t, geometry.Point{}, closest)
}

// ------------------------------------------------------------------------
// 3. Rect: normalization and closed containment.
// ------------------------------------------------------------------------

func TestNewRect_NormalizesCorners(t *testing.T) {
	// Corners given bottom-right to top-left still produce Min ≤ Max.
	r := geometry.NewRect(geometry.Point{X: 10, Y: 8}, geometry.Point{X: 2, Y: 1})
	assert.Equal(t, geometry.Rect{MinX: 2, MinY: 1, MaxX: 10, MaxY: 8}, r)
}

func TestRectContains_ClosedBoundary(t *testing.T) {
	r := geometry.NewRect(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 10})

	assert.True(t, r.Contains(geometry.Point{X: 5, Y: 5}), "interior")
	assert.True(t, r.Contains(geometry.Point{X: 0, Y: 5}), "left edge")
	assert.True(t, r.Contains(geometry.Point{X: 10, Y: 10}), "corner")
	assert.False(t, r.Contains(geometry.Point{X: 10.001, Y: 5}), "outside")
}

// ------------------------------------------------------------------------
// 4. Helpers.
// ------------------------------------------------------------------------

func TestMidpointAndDistance(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}

	assert.Equal(t, geometry.Point{X: 5, Y: 0}, geometry.Midpoint(a, b))
	assert.InDelta(t, 10.0, geometry.Distance(a, b), 1e-12)
}

func TestNaNPropagates(t *testing.T) {
	// Malformed input is not guarded; NaN must flow through, not panic.
	d, _ := geometry.PointSegmentDistance(
		geometry.Point{X: math.NaN(), Y: 0},
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 10, Y: 0},
	)
	assert.True(t, math.IsNaN(d))
}
