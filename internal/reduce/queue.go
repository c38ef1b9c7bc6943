package reduce

import (
	"container/heap"
	"math"
	"sort"
)

// candidate is a removal cost as it was when pushed. It goes stale once the
// vertex is removed or its cost is recomputed (gen moves on).
type candidate struct {
	id   int
	gen  uint32
	cost float64
}

// costQueue implements heap.Interface ordered by cost, then original id.
type costQueue []candidate

func (q costQueue) Len() int { return len(q) }

func (q costQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].id < q[j].id
}

func (q costQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *costQueue) Push(x interface{}) {
	*q = append(*q, x.(candidate))
}

func (q *costQueue) Pop() interface{} {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[0 : n-1]
	return c
}

func newCostQueue(p *CyclicPolygon) *costQueue {
	q := make(costQueue, 0, p.Len())
	for _, s := range p.slots {
		q = append(q, candidate{id: s.id, gen: s.gen, cost: s.cost})
	}
	heap.Init(&q)
	return &q
}

// update pushes fresh candidates for the given polygon indices.
func (q *costQueue) update(p *CyclicPolygon, indices []int) {
	for _, i := range indices {
		s := p.slots[i]
		heap.Push(q, candidate{id: s.id, gen: s.gen, cost: s.cost})
	}
}

// popMin discards stale candidates and returns the index and cost of the
// cheapest live vertex. The returned candidate is consumed.
func (q *costQueue) popMin(p *CyclicPolygon) (int, float64) {
	for q.Len() > 0 {
		c := heap.Pop(q).(candidate)
		i, ok := p.find(c.id)
		if !ok || p.slots[i].gen != c.gen || p.slots[i].costDirty {
			continue
		}
		return i, c.cost
	}
	return -1, math.Inf(1)
}

// find locates a slot by original id. Splicing keeps ids ascending.
func (p *CyclicPolygon) find(id int) (int, bool) {
	i := sort.Search(len(p.slots), func(k int) bool { return p.slots[k].id >= id })
	if i < len(p.slots) && p.slots[i].id == id {
		return i, true
	}
	return -1, false
}
