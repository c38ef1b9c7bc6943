package zones

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// Hull computes the convex hull of points with a Graham scan. The result is
// a closed counter-clockwise ring, or nil when the points span no area.
func Hull(points []orb.Point) orb.Ring {
	if len(points) < 3 {
		return nil
	}

	pts := make([]orb.Point, len(points))
	copy(pts, points)

	// Find the point with lowest Y (and lowest X if tied)
	start := 0
	for i := 1; i < len(pts); i++ {
		if pts[i][1] < pts[start][1] ||
			(pts[i][1] == pts[start][1] && pts[i][0] < pts[start][0]) {
			start = i
		}
	}

	pts[0], pts[start] = pts[start], pts[0]
	pivot := pts[0]

	// Sort by polar angle, nearest first on the same ray
	rest := pts[1:]
	sort.Slice(rest, func(i, j int) bool {
		ai, aj := polarAngle(pivot, rest[i]), polarAngle(pivot, rest[j])
		if ai != aj {
			return ai < aj
		}
		return distSq(pivot, rest[i]) < distSq(pivot, rest[j])
	})

	hull := orb.Ring{pivot}
	for _, p := range rest {
		if p == pivot {
			continue
		}
		// Remove points that create right turn
		for len(hull) > 1 && crossProduct(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	if len(hull) < 3 {
		return nil
	}
	return append(hull, pivot)
}

func polarAngle(pivot, point orb.Point) float64 {
	return math.Atan2(point[1]-pivot[1], point[0]-pivot[0])
}

func distSq(a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	return dx*dx + dy*dy
}

// crossProduct calculates the cross product of vectors (b-a) and (c-a)
func crossProduct(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
