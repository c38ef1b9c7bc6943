// Package reduce cuts a polygon down to an exact number of vertices while
// keeping its area distortion low.
//
// Concave vertices are clipped as ears. Convex vertices are removed by
// sliding both neighbouring edges onto a line through the removed corner,
// so the reduced ring grows outward instead of cutting the corner off.
// Intermediate rings are cached so that requests for different sizes of the
// same source ring share work.
package reduce

import (
	"github.com/paulmach/orb"

	"mission-console/internal/repair"
)

// Repairer turns a possibly self-intersecting ring into a simple one,
// expanded by margin.
type Repairer interface {
	Repair(ring orb.Ring, margin float64) (orb.Ring, error)
}

// Options configures a Simplifier.
type Options struct {
	// CacheSize bounds the number of cached snapshots. Zero disables the cache.
	CacheSize int
	// SnapshotBelow stores a snapshot whenever a run drops below this many
	// vertices.
	SnapshotBelow int
	// ScanLimit is the largest ring reduced with a linear minimum scan;
	// bigger rings use a priority queue.
	ScanLimit int
	// LexicographicExtreme breaks exact x ties by y when locating the vertex
	// that decides the winding.
	LexicographicExtreme bool
	// Repairer defaults to repair.ZeroMargin.
	Repairer Repairer
}

// DefaultOptions returns the settings used by the console.
func DefaultOptions() Options {
	return Options{
		CacheSize:     4096,
		SnapshotBelow: 64,
		ScanLimit:     512,
	}
}

// Simplifier reduces rings to a requested vertex count. It is safe for
// concurrent use; each call works on its own polygon.
type Simplifier struct {
	opts     Options
	eval     *Evaluator
	cache    *Cache
	driver   *driver
	repairer Repairer
}

// New creates a Simplifier.
func New(opts Options) (*Simplifier, error) {
	s := &Simplifier{
		opts:     opts,
		eval:     &Evaluator{},
		repairer: opts.Repairer,
	}
	if s.repairer == nil {
		s.repairer = repair.ZeroMargin{}
	}

	if opts.CacheSize > 0 {
		cache, err := NewCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	s.driver = &driver{
		eval:          s.eval,
		cache:         s.cache,
		snapshotBelow: opts.SnapshotBelow,
		scanLimit:     opts.ScanLimit,
	}
	return s, nil
}

// Evaluations returns how many removal costs have been computed.
func (s *Simplifier) Evaluations() int64 {
	return s.eval.Evaluations()
}

// CacheLen returns the number of cached snapshots.
func (s *Simplifier) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

// PurgeCache drops every cached snapshot.
func (s *Simplifier) PurgeCache() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Simplify returns ring reduced to target vertices, closed. The input may
// be closed or open. A target at or above the vertex count returns the ring
// unchanged.
func (s *Simplifier) Simplify(ring orb.Ring, target int) (orb.Ring, error) {
	points := openPoints(ring)

	if len(points) < 3 {
		return nil, &ValidationError{Reason: "a ring needs at least 3 vertices besides the closing one"}
	}
	if target < 3 {
		return nil, &ValidationError{Reason: "target vertex count must be at least 3"}
	}

	raw := points
	if target < len(points) {
		orientation := OrientationOf(points, s.opts.LexicographicExtreme)
		hash := contentHash(points, s.flags())

		p := s.driver.start(points, orientation, hash, target)
		if err := s.driver.reduce(p, target, hash); err != nil {
			return nil, err
		}
		raw = p.Points()
	}

	repaired, err := s.repairer.Repair(orb.Ring(raw), 0)
	if err != nil {
		return nil, &BufferError{Err: err}
	}
	return closeRing(repaired), nil
}

// SimplifyPolygon reduces the exterior ring of poly. Holes are dropped.
func (s *Simplifier) SimplifyPolygon(poly orb.Polygon, target int) (orb.Polygon, error) {
	if len(poly) == 0 {
		return nil, &ValidationError{Reason: "polygon has no exterior ring"}
	}

	ring, err := s.Simplify(poly[0], target)
	if err != nil {
		return nil, err
	}
	return orb.Polygon{ring}, nil
}

func (s *Simplifier) flags() uint64 {
	if s.opts.LexicographicExtreme {
		return 1
	}
	return 0
}

// openPoints copies the ring without its closing duplicate.
func openPoints(ring orb.Ring) []orb.Point {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	points := make([]orb.Point, n)
	copy(points, ring[:n])
	return points
}

func closeRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 || ring[0] == ring[len(ring)-1] {
		return ring
	}
	return append(ring, ring[0])
}
