package repair

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestCrossing(t *testing.T) {
	cases := []struct {
		name   string
		e1, e2 edge
		want   orb.Point
		ok     bool
	}{
		{
			name: "proper",
			e1:   edge{P1: orb.Point{0, 0}, P2: orb.Point{20, 20}},
			e2:   edge{P1: orb.Point{20, -10}, P2: orb.Point{0, 10}},
			want: orb.Point{5, 5},
			ok:   true,
		},
		{
			name: "shared endpoint",
			e1:   edge{P1: orb.Point{0, 0}, P2: orb.Point{10, 0}},
			e2:   edge{P1: orb.Point{10, 0}, P2: orb.Point{10, 10}},
		},
		{
			name: "endpoint on edge",
			e1:   edge{P1: orb.Point{0, 0}, P2: orb.Point{10, 0}},
			e2:   edge{P1: orb.Point{5, 0}, P2: orb.Point{5, 10}},
		},
		{
			name: "collinear overlap",
			e1:   edge{P1: orb.Point{0, 0}, P2: orb.Point{10, 0}},
			e2:   edge{P1: orb.Point{5, 0}, P2: orb.Point{15, 0}},
		},
		{
			name: "apart",
			e1:   edge{P1: orb.Point{0, 0}, P2: orb.Point{1, 1}},
			e2:   edge{P1: orb.Point{5, 0}, P2: orb.Point{6, 3}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, ok := crossing(tc.e1, tc.e2)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want[0], x[0], 1e-9)
				assert.InDelta(t, tc.want[1], x[1], 1e-9)
			}
		})
	}
}

func TestFirstCrossing(t *testing.T) {
	simple := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	_, _, _, ok := newEdgeIndex(simple).firstCrossing()
	assert.False(t, ok)

	bowTie := []orb.Point{{0, 0}, {20, 20}, {20, -10}, {0, 10}}
	i, j, x, ok := newEdgeIndex(bowTie).firstCrossing()
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 2, j)
	assert.Equal(t, orb.Point{5, 5}, x)
}

func TestEdgeIndexFindsAxisParallelNeighbours(t *testing.T) {
	pts := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {5, 10}, {5, -5}, {0, -5}}
	idx := newEdgeIndex(pts)

	var got []int
	for _, e := range idx.near(0) {
		got = append(got, e.Index)
	}
	assert.Equal(t, []int{0, 1, 3, 5}, got)
}
