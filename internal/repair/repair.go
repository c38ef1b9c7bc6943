// Package repair turns self-intersecting rings back into simple ones, the
// way buffering a polygon by zero does.
package repair

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	// ErrMarginUnsupported is returned for any margin other than zero.
	ErrMarginUnsupported = errors.New("repair: only a zero margin is supported")

	// ErrEmptyResult is returned when no part of the ring keeps a positive
	// area in the ring's own winding.
	ErrEmptyResult = errors.New("repair: ring has no area left")
)

// ZeroMargin repairs rings by splitting them at their crossings and keeping
// the largest loop that winds the same way as the input.
type ZeroMargin struct{}

// Repair returns a closed, simple ring. A ring that is already simple comes
// back unchanged apart from being closed.
func (ZeroMargin) Repair(ring orb.Ring, margin float64) (orb.Ring, error) {
	if margin != 0 {
		return nil, fmt.Errorf("%w (got %g)", ErrMarginUnsupported, margin)
	}

	points := openPoints(ring)
	if len(points) < 3 {
		return nil, ErrEmptyResult
	}

	orientation := closed(points).Orientation()
	if orientation == 0 {
		return nil, ErrEmptyResult
	}

	loops := split(points)
	if len(loops) == 1 {
		return closed(points), nil
	}

	var (
		best     orb.Ring
		bestArea float64
	)
	for _, loop := range loops {
		r := closed(loop)
		if r.Orientation() != orientation {
			continue
		}
		if a := planar.Area(r); a > bestArea {
			best, bestArea = r, a
		}
	}
	if best == nil {
		return nil, ErrEmptyResult
	}
	return best, nil
}

// split cuts an open ring at its first crossing and recurses on both
// halves until every loop is free of proper crossings. Each half is
// strictly shorter than its parent.
func split(points []orb.Point) [][]orb.Point {
	if len(points) < 4 {
		return [][]orb.Point{points}
	}

	i, j, x, ok := newEdgeIndex(points).firstCrossing()
	if !ok {
		return [][]orb.Point{points}
	}

	inner := make([]orb.Point, 0, j-i+1)
	inner = append(inner, x)
	inner = append(inner, points[i+1:j+1]...)

	outer := make([]orb.Point, 0, len(points)-(j-i)+1)
	outer = append(outer, points[j+1:]...)
	outer = append(outer, points[:i+1]...)
	outer = append(outer, x)

	return append(split(inner), split(outer)...)
}

func openPoints(ring orb.Ring) []orb.Point {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	points := make([]orb.Point, n)
	copy(points, ring[:n])
	return points
}

func closed(points []orb.Point) orb.Ring {
	r := make(orb.Ring, 0, len(points)+1)
	r = append(r, points...)
	return append(r, points[0])
}
