package reduce

import (
	"math"
	"sync/atomic"

	"github.com/paulmach/orb"
)

// parallelTolerance is the smallest |sin| of the angle between two lines
// that still yields an intersection point.
const parallelTolerance = 1e-12

// Evaluator classifies vertices and prices their removal. It counts cost
// evaluations so callers can observe how much work a run did.
type Evaluator struct {
	evaluations atomic.Int64
}

// Evaluations returns the number of removal costs computed so far.
func (e *Evaluator) Evaluations() int64 {
	return e.evaluations.Load()
}

// Classify reports whether the turn at i agrees with the ring's winding.
func (e *Evaluator) Classify(p *CyclicPolygon, i int) Curvature {
	t := TurnAngle(p.pos(i-1), p.pos(i), p.pos(i+1))
	if sign(t) == p.orientation {
		return Convex
	}
	return Concave
}

// RemovalCost returns the area penalty of deleting the vertex at i.
// A convex vertex is only priced when both neighbours are convex too.
func (e *Evaluator) RemovalCost(p *CyclicPolygon, i int) float64 {
	e.evaluations.Add(1)

	switch p.slots[p.index(i)].curv {
	case Concave:
		return finite(ConcaveCost(p.pos(i-1), p.pos(i), p.pos(i+1)))
	case Convex:
		if p.slots[p.index(i-1)].curv != Convex || p.slots[p.index(i+1)].curv != Convex {
			return math.Inf(1)
		}
		cost, _, _ := ConvexCost(p.pos(i-2), p.pos(i-1), p.pos(i), p.pos(i+1), p.pos(i+2))
		return cost
	}
	return math.Inf(1)
}

// ConcaveCost is the area of the ear a, b, c clipped when b is removed.
func ConcaveCost(a, b, c orb.Point) float64 {
	return triangleArea(a, b, c)
}

// ConvexCost prices removing c by sliding its neighbours b and d along the
// extended edges a→b and e→d until they meet the line through c parallel
// to the chord b–d. It returns the cost and the new positions of b and d.
// Near-parallel edges give an infinite cost.
func ConvexCost(a, b, c, d, e orb.Point) (float64, orb.Point, orb.Point) {
	chord := orb.Point{d[0] - b[0], d[1] - b[1]}

	b2 := intersectLines(b, orb.Point{b[0] - a[0], b[1] - a[1]}, c, chord)
	d2 := intersectLines(d, orb.Point{d[0] - e[0], d[1] - e[1]}, c, chord)

	cost := triangleArea(b, b2, c) + triangleArea(d, d2, c)
	return finite(cost), b2, d2
}

// intersectLines intersects the line through p1 along u1 with the line
// through p2 along u2 by solving n1·x = n1·p1, n2·x = n2·p2.
func intersectLines(p1, u1, p2, u2 orb.Point) orb.Point {
	n1 := orb.Point{-u1[1], u1[0]}
	n2 := orb.Point{-u2[1], u2[0]}
	c1 := n1[0]*p1[0] + n1[1]*p1[1]
	c2 := n2[0]*p2[0] + n2[1]*p2[1]

	det := n1[0]*n2[1] - n1[1]*n2[0]
	if math.Abs(det) <= parallelTolerance*math.Hypot(n1[0], n1[1])*math.Hypot(n2[0], n2[1]) {
		return orb.Point{math.Inf(1), math.Inf(1)}
	}

	return orb.Point{
		(c1*n2[1] - n1[1]*c2) / det,
		(n1[0]*c2 - c1*n2[0]) / det,
	}
}

func triangleArea(a, b, c orb.Point) float64 {
	cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	return math.Abs(cross) / 2
}

// finite maps NaN and ±Inf to +Inf.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.Inf(1)
	}
	return v
}
