package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mission-console/internal/config"
	"mission-console/internal/reduce"
	"mission-console/internal/zones"
)

// newSimplifier builds the engine from the engine section of cfg.
func newSimplifier(cfg config.Config) (*reduce.Simplifier, error) {
	return reduce.New(reduce.Options{
		CacheSize:            cfg.Engine.CacheSize,
		SnapshotBelow:        cfg.Engine.SnapshotBelow,
		ScanLimit:            cfg.Engine.ScanLimit,
		LexicographicExtreme: cfg.Engine.LexicographicExtreme,
	})
}

// openStore opens the configured zone store, in memory when no path is set.
func openStore(cfg config.Config) (*zones.Store, error) {
	if cfg.StorePath == "" {
		log.Println("ℹ️  No store_path configured, zones are kept in memory only")
		return zones.OpenMemStore()
	}
	return zones.OpenStore(cfg.StorePath)
}

// loadZones merges the persisted zones with the zone directory and writes
// the directory's zones back to the store.
func loadZones(cfg config.Config, store *zones.Store) ([]zones.Zone, error) {
	persisted, err := store.All()
	if err != nil {
		return nil, fmt.Errorf("reading zone store: %w", err)
	}
	log.Printf("📂 %d zones in store\n", len(persisted))

	fromDir, err := zones.LoadDir(cfg.ZonesDir)
	if err != nil {
		return nil, fmt.Errorf("loading zone directory: %w", err)
	}
	fromDir = zones.DropContained(fromDir)

	if err := store.Put(fromDir...); err != nil {
		return nil, fmt.Errorf("persisting zones: %w", err)
	}

	return append(persisted, fromDir...), nil
}

func runServe(cfg config.Config) error {
	log.Println("========================================")
	log.Println("🚀 Mission Console Zone Server")
	log.Println("========================================")

	simplifier, err := newSimplifier(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	initial, err := loadZones(cfg, store)
	if err != nil {
		return err
	}

	srv := NewServer(simplifier, store, initial)
	log.Printf("✅ %d zones indexed\n", srv.index.Len())
	log.Println("")

	log.Printf("Server starting on %s\n", cfg.Listen)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  GET    /health           - Check server status")
	log.Println("  POST   /simplify         - Reduce a ring to maxVertices")
	log.Println("  POST   /hull             - Hull of fleet positions")
	log.Println("  GET    /zones?bbox=...   - Zones in a bounding box")
	log.Println("  POST   /zones            - Upload GeoJSON zones")
	log.Println("  GET    /zones/{id}       - One zone, ?maxVertices=N to simplify")
	log.Println("  DELETE /cache            - Drop cached snapshots")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	return http.ListenAndServe(cfg.Listen, srv.Handler())
}

// simplifyFeatures reduces the exterior ring of every polygon feature to
// maxVertices. Failing features are logged and left as they were.
func simplifyFeatures(simplifier *reduce.Simplifier, fc *geojson.FeatureCollection, maxVertices int) int {
	simplified := 0
	for i, f := range fc.Features {
		var err error
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			var p orb.Polygon
			p, err = simplifyLonLat(simplifier, g, maxVertices)
			if err == nil {
				f.Geometry = p
			}
		case orb.MultiPolygon:
			mp := make(orb.MultiPolygon, 0, len(g))
			for _, poly := range g {
				var p orb.Polygon
				p, err = simplifyLonLat(simplifier, poly, maxVertices)
				if err != nil {
					break
				}
				mp = append(mp, p)
			}
			if err == nil {
				f.Geometry = mp
			}
		default:
			continue
		}

		if err != nil {
			log.Printf("⚠️  Feature %d left unchanged: %v\n", i, err)
			continue
		}
		simplified++
	}
	return simplified
}

func simplifyLonLat(simplifier *reduce.Simplifier, poly orb.Polygon, maxVertices int) (orb.Polygon, error) {
	if len(poly) == 0 {
		return poly, nil
	}
	ring, err := simplifier.Simplify(zones.ToPlanar(poly[0]), maxVertices)
	if err != nil {
		return nil, err
	}
	return orb.Polygon{zones.ToGeographic(ring)}, nil
}

func runSimplify(cfg config.Config, path string, maxVertices int, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	simplifier, err := newSimplifier(cfg)
	if err != nil {
		return err
	}

	n := simplifyFeatures(simplifier, fc, maxVertices)
	log.Printf("✅ Simplified %d of %d features to %d vertices\n", n, len(fc.Features), maxVertices)

	result, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if out == "" {
		_, err = os.Stdout.Write(append(result, '\n'))
		return err
	}
	return os.WriteFile(out, result, 0644)
}
