package reduce

import (
	"math"

	"github.com/paulmach/orb"
)

// TurnAngle returns the signed angle between the incoming edge a→b and the
// outgoing edge b→c, in the range (-π, π]. Positive values turn left.
func TurnAngle(a, b, c orb.Point) float64 {
	in := math.Atan2(b[1]-a[1], b[0]-a[0])
	out := math.Atan2(c[1]-b[1], c[0]-b[0])

	d := out - in
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// sign returns -1, 0 or 1. NaN counts as 0.
func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// extremeIndex finds the vertex used to read the winding of the ring.
//
// The default order only looks at x: on an exact x tie the vertex seen first
// stays extreme. With lexicographic set, ties fall back to y.
func extremeIndex(points []orb.Point, lexicographic bool) int {
	best := 0
	for i := 1; i < len(points); i++ {
		p, q := points[i], points[best]
		if p[0] < q[0] {
			best = i
			continue
		}
		if lexicographic && p[0] == q[0] && p[1] < q[1] {
			best = i
		}
	}
	return best
}

// OrientationOf returns +1 for a counter-clockwise ring, -1 for clockwise
// and 0 when the turn at the extreme vertex is degenerate. points must not
// repeat the closing vertex.
func OrientationOf(points []orb.Point, lexicographic bool) int {
	n := len(points)
	if n < 3 {
		return 0
	}

	i := extremeIndex(points, lexicographic)
	prev := points[(i-1+n)%n]
	next := points[(i+1)%n]
	return sign(TurnAngle(prev, points[i], next))
}
