package reduce

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestTurnAngle(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c orb.Point
		want    float64
	}{
		{"left", orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{1, 1}, math.Pi / 2},
		{"right", orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{1, -1}, -math.Pi / 2},
		{"straight", orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{2, 0}, 0},
		{"reversal", orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{0, 0}, math.Pi},
		{"wrap", orb.Point{0, 0}, orb.Point{-1, 0.001}, orb.Point{-2, -0.001}, 0.003},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, TurnAngle(tc.a, tc.b, tc.c), 1e-6)
		})
	}
}

func TestTurnAngleRange(t *testing.T) {
	pts := []orb.Point{{0, 0}, {3, 1}, {-2, 4}, {5, -5}, {-1, -1}, {0, 7}}
	for _, a := range pts {
		for _, b := range pts {
			for _, c := range pts {
				if a == b || b == c {
					continue
				}
				got := TurnAngle(a, b, c)
				assert.Greater(t, got, -math.Pi)
				assert.LessOrEqual(t, got, math.Pi)
			}
		}
	}
}

func TestOrientationOf(t *testing.T) {
	ccw := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	cw := []orb.Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

	assert.Equal(t, 1, OrientationOf(ccw, false))
	assert.Equal(t, -1, OrientationOf(cw, false))
	assert.Equal(t, 0, OrientationOf(ccw[:2], false))
}

func TestOrientationOfExtremeTie(t *testing.T) {
	// The first vertex sits in the middle of the left edge, tied on x with
	// both left corners.
	ring := []orb.Point{{0, 5}, {0, 0}, {10, 0}, {10, 10}, {0, 10}}

	assert.Equal(t, 0, extremeIndex(ring, false))
	assert.Equal(t, 0, OrientationOf(ring, false), "observed order keeps the first tied vertex")

	assert.Equal(t, 1, extremeIndex(ring, true))
	assert.Equal(t, 1, OrientationOf(ring, true))
}
