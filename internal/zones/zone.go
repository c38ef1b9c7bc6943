// Package zones keeps the console's no-fly zones: loading them from GeoJSON
// files, filtering and indexing them by bounds, and persisting them in
// LevelDB between restarts.
package zones

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Zone is a single-ring no-fly zone in lon/lat.
type Zone struct {
	ID         string
	Name       string
	Ring       orb.Ring
	Properties geojson.Properties
}

// Bound returns the zone's bounding box.
func (z Zone) Bound() orb.Bound {
	return z.Ring.Bound()
}

// Feature converts the zone back to a GeoJSON polygon feature.
func (z Zone) Feature() *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{z.Ring})
	f.ID = z.ID
	for k, v := range z.Properties {
		f.Properties[k] = v
	}
	if z.Name != "" {
		f.Properties["name"] = z.Name
	}
	return f
}

// WithRing returns a copy of the zone with its ring replaced.
func (z Zone) WithRing(r orb.Ring) Zone {
	z.Ring = r
	return z
}
