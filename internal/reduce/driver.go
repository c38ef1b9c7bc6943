package reduce

import (
	"math"

	"github.com/paulmach/orb"
)

// driver runs the greedy reduction: always remove the cheapest vertex,
// then reprice the neighbourhood that changed.
type driver struct {
	eval          *Evaluator
	cache         *Cache // nil disables snapshots
	snapshotBelow int
	scanLimit     int
}

// start builds the polygon a run begins from. A cached snapshot at the
// target length, or the shortest one above it, replaces the source ring.
func (d *driver) start(points []orb.Point, orientation int, hash uint64, target int) *CyclicPolygon {
	if d.cache != nil {
		for l := target; l < len(points) && l < d.snapshotBelow; l++ {
			if s, ok := d.cache.get(hash, l); ok {
				return newCyclicPolygon(s.points, s.orientation, d.eval)
			}
		}
	}
	return newCyclicPolygon(points, orientation, d.eval)
}

// reduce removes vertices from p until it has target vertices left.
func (d *driver) reduce(p *CyclicPolygon, target int, hash uint64) error {
	var q *costQueue
	if p.Len() > d.scanLimit {
		q = newCostQueue(p)
	}

	for p.Len() > target {
		var (
			i    int
			cost float64
		)
		if q != nil && p.Len() > d.scanLimit {
			i, cost = q.popMin(p)
		} else {
			i, cost = scanMin(p)
		}
		if i < 0 || math.IsInf(cost, 1) {
			return &NoRemovableVertexError{Length: p.Len(), Target: target}
		}

		touched := d.remove(p, i)
		if q != nil {
			q.update(p, touched)
		}

		if d.cache != nil && p.Len() < d.snapshotBelow {
			d.cache.put(hash, snapshot{points: p.Points(), orientation: p.orientation})
		}
	}
	return nil
}

// scanMin returns the first vertex with the lowest cost.
func scanMin(p *CyclicPolygon) (int, float64) {
	best, bestCost := 0, math.Inf(1)
	for i, s := range p.slots {
		if s.cost < bestCost {
			best, bestCost = i, s.cost
		}
	}
	return best, bestCost
}

// remove deletes the vertex at i, writes back its neighbours and reprices
// what changed. It returns the indices whose cost was recomputed.
func (d *driver) remove(p *CyclicPolygon, i int) []int {
	if p.slots[i].curv == Convex {
		_, b2, d2 := ConvexCost(p.pos(i-2), p.pos(i-1), p.pos(i), p.pos(i+1), p.pos(i+2))
		p.SetPosition(i-1, b2)
		p.SetPosition(i+1, d2)
	} else {
		p.SetPosition(i-1, p.pos(i-1))
		p.SetPosition(i+1, p.pos(i+1))
	}
	p.RemoveAt(i)

	// The written-back neighbours now sit at i-1 and i. Their turns and the
	// turns next to them changed; every cost window reaching them is stale.
	for k := i - 2; k <= i+1; k++ {
		p.Invalidate(k)
	}
	for k := i - 3; k <= i+2; k++ {
		p.InvalidateCost(k)
	}

	p.RefreshCurvatures()
	return p.RefreshCosts()
}
