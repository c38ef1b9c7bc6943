package repair

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// edgeEntry wraps an edge for R-tree storage.
type edgeEntry struct {
	Edge edge
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *edgeEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// edgeIndex answers "which edges could touch this one" for a single ring.
type edgeIndex struct {
	tree  *rtreego.Rtree
	edges []edge
	pad   float64
}

// newEdgeIndex indexes the edges of an open ring, including the closing
// edge from the last point back to the first.
func newEdgeIndex(points []orb.Point) *edgeIndex {
	n := len(points)
	idx := &edgeIndex{
		edges: make([]edge, n),
		pad:   padFor(points),
	}

	objs := make([]rtreego.Spatial, 0, n)
	for i := 0; i < n; i++ {
		e := edge{P1: points[i], P2: points[(i+1)%n], Index: i}
		idx.edges[i] = e
		objs = append(objs, &edgeEntry{Edge: e, BBox: idx.rect(e)})
	}

	// 2D, min 25, max 50 entries per node
	idx.tree = rtreego.NewTree(2, 25, 50, objs...)
	return idx
}

// padFor grows edge boxes slightly so that axis-parallel edges, whose boxes
// have zero width, still overlap their neighbours.
func padFor(points []orb.Point) float64 {
	b := orb.MultiPoint(points).Bound()
	extent := math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	return 1e-9 * math.Max(1, extent)
}

func (idx *edgeIndex) rect(e edge) rtreego.Rect {
	r, _ := rtreego.NewRectFromPoints(
		rtreego.Point{math.Min(e.P1[0], e.P2[0]) - idx.pad, math.Min(e.P1[1], e.P2[1]) - idx.pad},
		rtreego.Point{math.Max(e.P1[0], e.P2[0]) + idx.pad, math.Max(e.P1[1], e.P2[1]) + idx.pad},
	)
	return r
}

// near returns the edges whose boxes overlap edge i, ordered by index.
func (idx *edgeIndex) near(i int) []edge {
	results := idx.tree.SearchIntersect(idx.rect(idx.edges[i]))

	edges := make([]edge, 0, len(results))
	for _, item := range results {
		edges = append(edges, item.(*edgeEntry).Edge)
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].Index < edges[b].Index })
	return edges
}

// firstCrossing returns the lowest pair of non-adjacent edges i < j that
// cross, and the crossing point.
func (idx *edgeIndex) firstCrossing() (int, int, orb.Point, bool) {
	n := len(idx.edges)
	for i := 0; i < n; i++ {
		for _, other := range idx.near(i) {
			j := other.Index
			if j <= i+1 || (i == 0 && j == n-1) {
				continue
			}
			if x, ok := crossing(idx.edges[i], other); ok {
				return i, j, x, true
			}
		}
	}
	return 0, 0, orb.Point{}, false
}
