package reduce

import (
	"math"

	"github.com/paulmach/orb"
)

// Curvature classifies a vertex against the winding of its ring.
type Curvature int8

const (
	// CurvatureUnknown marks a vertex awaiting reclassification.
	CurvatureUnknown Curvature = iota
	Convex
	Concave
)

func (c Curvature) String() string {
	switch c {
	case Convex:
		return "convex"
	case Concave:
		return "concave"
	}
	return "unknown"
}

// Vertex is a read-only view of one slot of a CyclicPolygon.
type Vertex struct {
	Pos       orb.Point
	Curvature Curvature
	Cost      float64 // valid when CostKnown
	CostKnown bool
}

type slot struct {
	pos  orb.Point
	id   int    // position in the ring the polygon was built from
	gen  uint32 // bumped every time cost is recomputed
	curv Curvature
	cost float64

	costDirty bool
}

// CyclicPolygon is a circularly indexed vertex arena with cached
// curvature and removal cost per slot. It is not safe for concurrent use.
type CyclicPolygon struct {
	slots       []slot
	orientation int
	eval        *Evaluator
}

// NewCyclicPolygon builds a polygon from an open ring (no closing
// duplicate) and classifies every vertex. A nil evaluator gets a fresh one.
func NewCyclicPolygon(points []orb.Point, eval *Evaluator) (*CyclicPolygon, error) {
	if len(points) < 3 {
		return nil, &ValidationError{Reason: "a polygon needs at least 3 vertices"}
	}
	return newCyclicPolygon(points, OrientationOf(points, false), eval), nil
}

func newCyclicPolygon(points []orb.Point, orientation int, eval *Evaluator) *CyclicPolygon {
	if eval == nil {
		eval = &Evaluator{}
	}

	p := &CyclicPolygon{
		slots:       make([]slot, len(points)),
		orientation: orientation,
		eval:        eval,
	}
	for i, pt := range points {
		p.slots[i] = slot{pos: pt, id: i, cost: math.Inf(1), costDirty: true}
	}

	p.RefreshCurvatures()
	p.RefreshCosts()
	return p
}

// Len returns the current number of vertices.
func (p *CyclicPolygon) Len() int {
	return len(p.slots)
}

// Orientation returns the winding sign computed at construction.
func (p *CyclicPolygon) Orientation() int {
	return p.orientation
}

func (p *CyclicPolygon) index(i int) int {
	n := len(p.slots)
	return (i%n + n) % n
}

func (p *CyclicPolygon) pos(i int) orb.Point {
	return p.slots[p.index(i)].pos
}

// VertexAt returns the vertex at circular index i.
func (p *CyclicPolygon) VertexAt(i int) Vertex {
	s := p.slots[p.index(i)]
	return Vertex{
		Pos:       s.pos,
		Curvature: s.curv,
		Cost:      s.cost,
		CostKnown: !s.costDirty,
	}
}

// VerticesAt returns the vertices at i+offset for every offset, in order.
func (p *CyclicPolygon) VerticesAt(i int, offsets ...int) []Vertex {
	vs := make([]Vertex, len(offsets))
	for k, off := range offsets {
		vs[k] = p.VertexAt(i + off)
	}
	return vs
}

// SetPosition moves the vertex at i and marks its curvature and cost
// unknown. Neighbours are not touched.
func (p *CyclicPolygon) SetPosition(i int, pt orb.Point) {
	s := &p.slots[p.index(i)]
	s.pos = pt
	s.curv = CurvatureUnknown
	s.costDirty = true
}

// Invalidate marks curvature and cost of the vertex at i unknown.
func (p *CyclicPolygon) Invalidate(i int) {
	s := &p.slots[p.index(i)]
	s.curv = CurvatureUnknown
	s.costDirty = true
}

// InvalidateCost marks only the cost of the vertex at i unknown.
func (p *CyclicPolygon) InvalidateCost(i int) {
	p.slots[p.index(i)].costDirty = true
}

// RemoveAt deletes the vertex at i. Later vertices shift down by one.
func (p *CyclicPolygon) RemoveAt(i int) {
	i = p.index(i)
	p.slots = append(p.slots[:i], p.slots[i+1:]...)
}

// RefreshCurvatures classifies every vertex whose curvature is unknown.
func (p *CyclicPolygon) RefreshCurvatures() {
	for i := range p.slots {
		if p.slots[i].curv == CurvatureUnknown {
			p.slots[i].curv = p.eval.Classify(p, i)
		}
	}
}

// RefreshCosts recomputes every unknown removal cost and returns the
// indices it touched. Curvatures must be known.
func (p *CyclicPolygon) RefreshCosts() []int {
	var touched []int
	for i := range p.slots {
		s := &p.slots[i]
		if !s.costDirty {
			continue
		}
		s.cost = p.eval.RemovalCost(p, i)
		s.costDirty = false
		s.gen++
		touched = append(touched, i)
	}
	return touched
}

// Points returns a copy of the vertex positions.
func (p *CyclicPolygon) Points() []orb.Point {
	pts := make([]orb.Point, len(p.slots))
	for i, s := range p.slots {
		pts[i] = s.pos
	}
	return pts
}
