package zones

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent keeps boxes of axis-parallel or point-like geometry valid for
// the R-tree, which rejects zero-length sides.
const minExtent = 1e-9

// zoneEntry wraps a zone for R-tree storage
type zoneEntry struct {
	Zone Zone
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *zoneEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// Index manages zone queries by bounding box. It is not safe for
// concurrent writers; callers guard it.
type Index struct {
	tree    *rtreego.Rtree
	entries map[string]*zoneEntry
}

// NewIndex creates a new index over zones. Later zones replace earlier ones
// with the same id.
func NewIndex(zones []Zone) *Index {
	idx := &Index{
		tree:    rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
		entries: make(map[string]*zoneEntry, len(zones)),
	}
	for _, z := range zones {
		idx.Insert(z)
	}
	return idx
}

// Insert adds z, replacing any zone with the same id.
func (idx *Index) Insert(z Zone) {
	if len(z.Ring) == 0 {
		return
	}
	idx.Remove(z.ID)

	e := &zoneEntry{Zone: z, BBox: boundRect(z.Bound())}
	idx.tree.Insert(e)
	idx.entries[z.ID] = e
}

// Remove deletes the zone with the given id and reports whether it existed.
func (idx *Index) Remove(id string) bool {
	e, ok := idx.entries[id]
	if !ok {
		return false
	}
	idx.tree.Delete(e)
	delete(idx.entries, id)
	return true
}

// Get returns the zone with the given id.
func (idx *Index) Get(id string) (Zone, bool) {
	e, ok := idx.entries[id]
	if !ok {
		return Zone{}, false
	}
	return e.Zone, true
}

// Len returns the number of indexed zones.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Query returns the zones whose bounds intersect b, ordered by id.
func (idx *Index) Query(b orb.Bound) []Zone {
	results := idx.tree.SearchIntersect(boundRect(b))
	zones := make([]Zone, 0, len(results))

	for _, item := range results {
		zones = append(zones, item.(*zoneEntry).Zone)
	}

	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones
}

// boundRect converts an orb bound to an R-tree rectangle.
func boundRect(b orb.Bound) rtreego.Rect {
	r, _ := rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{
			math.Max(b.Max[0]-b.Min[0], minExtent),
			math.Max(b.Max[1]-b.Min[1], minExtent),
		},
	)
	return r
}
