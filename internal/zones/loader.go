package zones

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadDir loads every *.geojson file in dir. Files that cannot be read or
// parsed are logged and skipped.
func LoadDir(dir string) ([]Zone, error) {
	var all []Zone

	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	log.Printf("Loading no-fly zones from %d GeoJSON files...\n", len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		source := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		zones, err := ParseFeatureCollection(data, source)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		all = append(all, zones...)
		log.Printf("   ✅ Loaded %d zones from %s\n", len(zones), filepath.Base(file))
	}

	log.Printf("Total no-fly zones loaded: %d zones\n", len(all))
	return all, nil
}

// ParseFeatureCollection converts the Polygon and MultiPolygon features of a
// GeoJSON FeatureCollection to zones. Only exterior rings are kept. source
// names the collection in generated ids.
func ParseFeatureCollection(data []byte, source string) ([]Zone, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	var zones []Zone
	for n, f := range fc.Features {
		rings := exteriorRings(f.Geometry)
		if len(rings) == 0 {
			continue
		}

		id := featureID(f, source, n)
		name := propString(f.Properties, "name")
		for k, r := range rings {
			z := Zone{ID: id, Name: name, Ring: r, Properties: f.Properties}
			if len(rings) > 1 {
				z.ID = fmt.Sprintf("%s.%d", id, k)
			}
			zones = append(zones, z)
		}
	}
	return zones, nil
}

// exteriorRings returns the outer boundary of every polygon in g.
func exteriorRings(g orb.Geometry) []orb.Ring {
	var rings []orb.Ring

	switch g := g.(type) {
	case orb.Polygon:
		// First ring is the outer boundary
		if len(g) > 0 && len(g[0]) >= 3 {
			rings = append(rings, g[0])
		}
	case orb.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 && len(p[0]) >= 3 {
				rings = append(rings, p[0])
			}
		}
	}

	return rings
}

func featureID(f *geojson.Feature, source string, n int) string {
	if id := idString(f.ID); id != "" {
		return id
	}
	if id := propString(f.Properties, "id"); id != "" {
		return id
	}
	if name := propString(f.Properties, "name"); name != "" {
		return name
	}
	return fmt.Sprintf("%s#%d", source, n)
}

func propString(props geojson.Properties, key string) string {
	if props == nil {
		return ""
	}
	return idString(props[key])
}

func idString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
