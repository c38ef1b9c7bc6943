package reduce

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// radialRing returns n counter-clockwise points at random angles with
// radii drawn from [minR, 100]. minR == 100 gives a convex ring.
func radialRing(n int, minR float64, seed int64) []orb.Point {
	r := rand.New(rand.NewSource(seed))

	angles := make([]float64, n)
	for i := range angles {
		angles[i] = r.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)

	pts := make([]orb.Point, n)
	for i, a := range angles {
		radius := minR + r.Float64()*(100-minR)
		pts[i] = orb.Point{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return pts
}

func TestDriverKeepsCachedCostsExact(t *testing.T) {
	pts := radialRing(60, 40, 7)
	p := newCyclicPolygon(pts, OrientationOf(pts, false), nil)
	d := &driver{eval: p.eval, scanLimit: math.MaxInt}

	for p.Len() > 8 {
		i, cost := scanMin(p)
		if math.IsInf(cost, 1) {
			break
		}
		for j := range p.slots {
			assert.GreaterOrEqual(t, p.slots[j].cost, cost, "vertex %d undercuts the chosen one", j)
		}

		d.remove(p, i)

		fresh := newCyclicPolygon(p.Points(), p.Orientation(), nil)
		for j := range p.slots {
			require.Equal(t, fresh.slots[j].curv, p.slots[j].curv, "curvature of %d at length %d", j, p.Len())
			require.Equal(t, fresh.slots[j].cost, p.slots[j].cost, "cost of %d at length %d", j, p.Len())
		}
	}
}

func TestDriverQueueMatchesScan(t *testing.T) {
	for _, minR := range []float64{100, 60, 20} {
		pts := radialRing(300, minR, 11)
		orientation := OrientationOf(pts, false)

		scanned := newCyclicPolygon(pts, orientation, nil)
		queued := newCyclicPolygon(pts, orientation, nil)

		errScan := (&driver{eval: scanned.eval, scanLimit: math.MaxInt}).reduce(scanned, 12, 0)
		errQueue := (&driver{eval: queued.eval, scanLimit: 0}).reduce(queued, 12, 0)

		assert.Equal(t, errScan, errQueue, "minR %v", minR)
		assert.Equal(t, scanned.Points(), queued.Points(), "minR %v", minR)
	}
}

func TestDriverQueueHandsOverToScan(t *testing.T) {
	pts := radialRing(200, 100, 3)
	orientation := OrientationOf(pts, false)

	mixed := newCyclicPolygon(pts, orientation, nil)
	scanned := newCyclicPolygon(pts, orientation, nil)

	require.NoError(t, (&driver{eval: mixed.eval, scanLimit: 50}).reduce(mixed, 5, 0))
	require.NoError(t, (&driver{eval: scanned.eval, scanLimit: math.MaxInt}).reduce(scanned, 5, 0))

	assert.Equal(t, scanned.Points(), mixed.Points())
}

func TestDriverStallsWhenNothingIsRemovable(t *testing.T) {
	// Every turn is a reversal along the x axis: all corners are convex and
	// every edge slide is parallel to its chord.
	pts := []orb.Point{{0, 0}, {3, 0}, {1, 0}, {2, 0}}
	p := newCyclicPolygon(pts, OrientationOf(pts, false), nil)

	err := (&driver{eval: p.eval}).reduce(p, 3, 0)

	var stall *NoRemovableVertexError
	require.True(t, errors.As(err, &stall))
	assert.Equal(t, 4, stall.Length)
	assert.Equal(t, 3, stall.Target)
	assert.Equal(t, 4, p.Len())
}

func TestDriverStoresSnapshotsBelowThreshold(t *testing.T) {
	cache, err := NewCache(100)
	require.NoError(t, err)

	pts := radialRing(10, 100, 5)
	p := newCyclicPolygon(pts, OrientationOf(pts, false), nil)
	d := &driver{eval: p.eval, cache: cache, snapshotBelow: 6, scanLimit: math.MaxInt}

	require.NoError(t, d.reduce(p, 3, 42))

	assert.Equal(t, 3, cache.Len())
	for _, l := range []int{5, 4, 3} {
		s, ok := cache.get(42, l)
		require.True(t, ok, "length %d", l)
		assert.Len(t, s.points, l)
		assert.Equal(t, 1, s.orientation)
	}
	_, ok := cache.get(42, 6)
	assert.False(t, ok)
}

func TestDriverStartResumesFromShortestSnapshot(t *testing.T) {
	cache, err := NewCache(100)
	require.NoError(t, err)
	cache.put(9, snapshot{points: radialRing(7, 100, 1), orientation: 1})
	cache.put(9, snapshot{points: radialRing(9, 100, 1), orientation: 1})

	d := &driver{eval: &Evaluator{}, cache: cache, snapshotBelow: 64}
	source := radialRing(30, 100, 2)

	assert.Equal(t, 7, d.start(source, 1, 9, 5).Len())
	assert.Equal(t, 9, d.start(source, 1, 9, 8).Len())
	assert.Equal(t, 30, d.start(source, 1, 9, 12).Len())
	assert.Equal(t, 30, d.start(source, 1, 10, 5).Len(), "other source ring")
}
