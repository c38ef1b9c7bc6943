package reduce

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
)

type cacheKey struct {
	hash   uint64
	length int
}

// snapshot is the state of a run once it reached a given length.
type snapshot struct {
	points      []orb.Point
	orientation int
}

// Cache holds intermediate rings of earlier runs so a later request on the
// same source ring can resume instead of starting over. It is bounded and
// safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, snapshot]
}

// NewCache creates a cache holding at most size snapshots.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

func (c *Cache) get(hash uint64, length int) (snapshot, bool) {
	return c.entries.Get(cacheKey{hash: hash, length: length})
}

func (c *Cache) put(hash uint64, s snapshot) {
	c.entries.Add(cacheKey{hash: hash, length: len(s.points)}, s)
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every snapshot.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// contentHash fingerprints an open ring together with the option bits that
// change how it is reduced.
func contentHash(points []orb.Point, flags uint64) uint64 {
	d := xxhash.New()

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], flags)
	binary.LittleEndian.PutUint64(buf[8:], uint64(len(points)))
	d.Write(buf[:])

	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p[0]))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p[1]))
		d.Write(buf[:])
	}
	return d.Sum64()
}
