package reduce

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcaveCost(t *testing.T) {
	assert.InDelta(t, 50.0, ConcaveCost(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 10}), 1e-9)
	assert.Equal(t, 0.0, ConcaveCost(orb.Point{0, 0}, orb.Point{5, 0}, orb.Point{10, 0}))
}

func TestConvexCostSlidesBothEdges(t *testing.T) {
	// Corner (0,0) of the square, walked counter-clockwise.
	a, b, c, d, e := orb.Point{10, 10}, orb.Point{0, 10}, orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{10, 10}

	cost, b2, d2 := ConvexCost(a, b, c, d, e)

	assert.InDelta(t, 100.0, cost, 1e-9)
	assert.InDelta(t, -10.0, b2[0], 1e-9)
	assert.InDelta(t, 10.0, b2[1], 1e-9)
	assert.InDelta(t, 10.0, d2[0], 1e-9)
	assert.InDelta(t, -10.0, d2[1], 1e-9)
}

func TestConvexCostKeepsNewEdgeThroughRemovedCorner(t *testing.T) {
	a, b, c, d, e := orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{14, 3}, orb.Point{12, 9}, orb.Point{3, 11}

	_, b2, d2 := ConvexCost(a, b, c, d, e)

	// b' stays on line a-b, d' on line d-e, and b'-d' runs through c
	// parallel to the chord b-d.
	assert.InDelta(t, 0.0, side(a, b, b2), 1e-6)
	assert.InDelta(t, 0.0, side(d, e, d2), 1e-6)
	assert.InDelta(t, 0.0, side(b2, d2, c), 1e-6)
	chord := orb.Point{d[0] - b[0], d[1] - b[1]}
	slid := orb.Point{d2[0] - b2[0], d2[1] - b2[1]}
	assert.InDelta(t, 0.0, chord[0]*slid[1]-chord[1]*slid[0], 1e-6)
}

// side is twice the signed area of p1, p2, p3.
func side(p1, p2, p3 orb.Point) float64 {
	return (p2[0]-p1[0])*(p3[1]-p1[1]) - (p2[1]-p1[1])*(p3[0]-p1[0])
}

func TestConvexCostParallelIsInfinite(t *testing.T) {
	// a, b and d on one line: edge a-b never meets the line through c.
	cost, b2, _ := ConvexCost(orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{2, 1}, orb.Point{3, 0}, orb.Point{3, -5})

	assert.True(t, math.IsInf(cost, 1))
	assert.True(t, math.IsInf(b2[0], 0))
}

func TestConvexCostNaNInputIsInfinite(t *testing.T) {
	nan := math.NaN()
	cost, _, _ := ConvexCost(orb.Point{nan, 0}, orb.Point{1, 0}, orb.Point{2, 1}, orb.Point{3, 0}, orb.Point{3, 5})

	assert.True(t, math.IsInf(cost, 1))
}

func TestRemovalCostNeedsConvexNeighbours(t *testing.T) {
	// Hexagon with a collinear vertex at (5,0): it reads as concave, so
	// both of its neighbours cannot be priced as convex corners.
	eval := &Evaluator{}
	p, err := NewCyclicPolygon([]orb.Point{{0, 0}, {5, 0}, {10, 0}, {12, 5}, {10, 10}, {0, 10}}, eval)
	require.NoError(t, err)

	assert.Equal(t, Concave, p.VertexAt(1).Curvature)
	assert.Equal(t, 0.0, p.VertexAt(1).Cost)

	assert.Equal(t, Convex, p.VertexAt(0).Curvature)
	assert.True(t, math.IsInf(p.VertexAt(0).Cost, 1))
	assert.True(t, math.IsInf(p.VertexAt(2).Cost, 1))

	assert.InDelta(t, 10.0, p.VertexAt(3).Cost, 1e-9)
	assert.Equal(t, int64(6), eval.Evaluations())
}

func TestClassifyAgainstWinding(t *testing.T) {
	// Counter-clockwise arrow head; the notch at (5,4) turns against the winding.
	pts := []orb.Point{{0, 0}, {5, 4}, {10, 0}, {5, 10}}
	p, err := NewCyclicPolygon(pts, nil)
	require.NoError(t, err)

	want := []Curvature{Convex, Concave, Convex, Convex}
	for i, c := range want {
		assert.Equal(t, c, p.VertexAt(i).Curvature, "vertex %d", i)
	}
}
