package geometry

import "math"

// epsilon below which a squared segment length is treated as degenerate
// (both endpoints coincide).
const degenerateLenSq = 1e-9

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with Min ≤ Max on both axes.
// Use NewRect to normalize arbitrary corner pairs.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a normalized Rect from any two opposite corners.
// Rubber-band gestures may drag in any direction, so the corners are
// reordered here rather than at every containment test.
func NewRect(a, b Point) Rect {
	return Rect{
		MinX: math.Min(a.X, b.X),
		MinY: math.Min(a.Y, b.Y),
		MaxX: math.Max(a.X, b.X),
		MaxY: math.Max(a.Y, b.Y),
	}
}

// Contains reports whether p lies inside r. Containment is closed: a
// point exactly on the boundary counts as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the midpoint of the segment ab.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// orientation classifies the ordered triplet (p, q, r):
// 0 = collinear, 1 = clockwise, 2 = counterclockwise.
func orientation(p, q, r Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val == 0:
		return 0
	case val > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether q lies on segment pr, assuming p, q, r are
// already known to be collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segments p1q1 and p2q2 intersect.
// Touching endpoints and collinear overlaps count as intersections.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	// General case: the endpoints of each segment lie on opposite sides
	// of the other segment's supporting line.
	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear degenerate cases: an endpoint of one segment lies on the
	// other segment.
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}

	return false
}

// PointSegmentDistance returns the shortest distance from p to segment ab
// and the closest point on the segment. The projection parameter is
// clamped to [0,1]; when a and b coincide, the distance to a is returned.
func PointSegmentDistance(p, a, b Point) (float64, Point) {
	abX := b.X - a.X
	abY := b.Y - a.Y

	lenSq := abX*abX + abY*abY
	if lenSq < degenerateLenSq {
		return Distance(p, a), a
	}

	t := ((p.X-a.X)*abX + (p.Y-a.Y)*abY) / lenSq

	var closest Point
	switch {
	case t < 0:
		closest = a
	case t > 1:
		closest = b
	default:
		closest = Point{X: a.X + t*abX, Y: a.Y + t*abY}
	}

	return Distance(p, closest), closest
}
