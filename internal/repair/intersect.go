package repair

import (
	"math"

	"github.com/paulmach/orb"
)

// edge is the segment from P1 to P2, the Index-th edge of its ring.
type edge struct {
	P1, P2 orb.Point
	Index  int
}

// direction calculates the cross product to determine orientation.
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// crossing reports whether two edges cross properly, each strictly between
// its endpoints, and where. Touching and collinear overlap do not count.
func crossing(e1, e2 edge) (orb.Point, bool) {
	p1, p2 := e1.P1, e1.P2
	p3, p4 := e2.P1, e2.P2

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if !(((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))) {
		return orb.Point{}, false
	}

	// d1 and d2 have opposite signs, so d1-d2 is never zero here.
	t := d1 / (d1 - d2)
	x := orb.Point{
		p1[0] + t*(p2[0]-p1[0]),
		p1[1] + t*(p2[1]-p1[1]),
	}
	if math.IsNaN(x[0]) || math.IsNaN(x[1]) {
		return orb.Point{}, false
	}
	return x, true
}
