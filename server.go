package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mission-console/internal/reduce"
	"mission-console/internal/zones"
)

type SimplifyRequest struct {
	Ring        orb.Ring `json:"ring"`
	MaxVertices int      `json:"maxVertices"`
	Planar      bool     `json:"planar,omitempty"` // Ring is already in planar meters
}

type HullRequest struct {
	Points      []orb.Point `json:"points"`
	MaxVertices int         `json:"maxVertices,omitempty"` // Optional: reduce the hull to this many vertices
}

type RingResponse struct {
	Ring          orb.Ring `json:"ring"`
	Success       bool     `json:"success"`
	InputVertices int      `json:"inputVertices"`
	NumVertices   int      `json:"numVertices"`
}

// Server holds the zone index and the simplifier shared by all handlers.
type Server struct {
	simplifier *reduce.Simplifier
	store      *zones.Store

	zoneMutex sync.RWMutex
	index     *zones.Index
}

// NewServer indexes initial and serves it. store may already contain them.
func NewServer(simplifier *reduce.Simplifier, store *zones.Store, initial []zones.Zone) *Server {
	return &Server{
		simplifier: simplifier,
		store:      store,
		index:      zones.NewIndex(initial),
	}
}

// Handler returns the console API with CORS enabled.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("POST /simplify", s.simplifyHandler)
	mux.HandleFunc("POST /hull", s.hullHandler)
	mux.HandleFunc("GET /zones", s.queryZonesHandler)
	mux.HandleFunc("POST /zones", s.upsertZonesHandler)
	mux.HandleFunc("GET /zones/{id}", s.zoneHandler)
	mux.HandleFunc("DELETE /cache", s.purgeCacheHandler)

	return corsMiddleware(mux)
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.zoneMutex.RLock()
	numZones := s.index.Len()
	s.zoneMutex.RUnlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"numZones":     numZones,
		"cacheEntries": s.simplifier.CacheLen(),
		"evaluations":  s.simplifier.Evaluations(),
	})
}

// POST /simplify - Reduce a ring to maxVertices vertices
func (s *Server) simplifyHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("✂️  Simplify request received")
	defer log.Println("========================================")

	var req SimplifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("   Vertices: %d -> %d (planar: %v)\n", len(req.Ring), req.MaxVertices, req.Planar)

	ring, err := s.simplify(req.Ring, req.MaxVertices, req.Planar)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("✅ Ring simplified to %d vertices\n", len(ring)-1)
	writeJSON(w, http.StatusOK, RingResponse{
		Ring:          ring,
		Success:       true,
		InputVertices: len(req.Ring),
		NumVertices:   len(ring) - 1,
	})
}

// POST /hull - Convex hull of fleet positions, optionally reduced
func (s *Server) hullHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🛰️  Hull request received")
	defer log.Println("========================================")

	var req HullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	hull := zones.Hull(req.Points)
	if hull == nil {
		log.Printf("❌ %d positions span no area\n", len(req.Points))
		writeError(w, &reduce.ValidationError{Reason: "positions span no area"})
		return
	}
	log.Printf("   Positions: %d, hull vertices: %d\n", len(req.Points), len(hull)-1)

	ring := hull
	if req.MaxVertices > 0 && req.MaxVertices < len(hull)-1 {
		var err error
		ring, err = s.simplify(hull, req.MaxVertices, false)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	log.Printf("✅ Hull ready with %d vertices\n", len(ring)-1)
	writeJSON(w, http.StatusOK, RingResponse{
		Ring:          ring,
		Success:       true,
		InputVertices: len(req.Points),
		NumVertices:   len(ring) - 1,
	})
}

// GET /zones?bbox=minLon,minLat,maxLon,maxLat - Zones intersecting a box
func (s *Server) queryZonesHandler(w http.ResponseWriter, r *http.Request) {
	bound := orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
	if raw := r.URL.Query().Get("bbox"); raw != "" {
		b, err := parseBBox(raw)
		if err != nil {
			log.Printf("❌ Invalid bbox %q: %v\n", raw, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bound = b
	}

	s.zoneMutex.RLock()
	found := s.index.Query(bound)
	s.zoneMutex.RUnlock()

	log.Printf("🔍 %d zones in (%.4f, %.4f) to (%.4f, %.4f)\n",
		len(found), bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])

	fc := geojson.NewFeatureCollection()
	for _, z := range found {
		fc.Append(z.Feature())
	}
	writeJSON(w, http.StatusOK, fc)
}

// POST /zones - Upsert a GeoJSON FeatureCollection of zones
func (s *Server) upsertZonesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Zone upload received")
	defer log.Println("========================================")

	data, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	uploaded, err := zones.ParseFeatureCollection(data, "upload")
	if err != nil {
		log.Printf("❌ Invalid feature collection: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.store.Put(uploaded...); err != nil {
		log.Printf("❌ Failed to persist zones: %v\n", err)
		http.Error(w, "Failed to persist zones", http.StatusInternalServerError)
		return
	}

	s.zoneMutex.Lock()
	for _, z := range uploaded {
		s.index.Insert(z)
	}
	numZones := s.index.Len()
	s.zoneMutex.Unlock()

	log.Printf("✅ Stored %d zones (%d total)\n", len(uploaded), numZones)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"stored":   len(uploaded),
		"numZones": numZones,
	})
}

// GET /zones/{id}?maxVertices=N - One zone, simplified if N is given
func (s *Server) zoneHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.zoneMutex.RLock()
	z, ok := s.index.Get(id)
	s.zoneMutex.RUnlock()

	if !ok {
		log.Printf("❌ Zone %s not found\n", id)
		http.Error(w, "Zone not found", http.StatusNotFound)
		return
	}

	if raw := r.URL.Query().Get("maxVertices"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "maxVertices must be an integer", http.StatusBadRequest)
			return
		}

		ring, err := s.simplify(z.Ring, n, false)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Printf("✂️  Zone %s: %d -> %d vertices\n", id, len(z.Ring)-1, len(ring)-1)
		z = z.WithRing(ring)
	}

	writeJSON(w, http.StatusOK, z.Feature())
}

// DELETE /cache - Drop cached simplification snapshots
func (s *Server) purgeCacheHandler(w http.ResponseWriter, r *http.Request) {
	dropped := s.simplifier.CacheLen()
	s.simplifier.PurgeCache()

	log.Printf("🧹 Dropped %d cached snapshots\n", dropped)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"dropped": dropped,
	})
}

// simplify reduces a lon/lat ring in Mercator meters, or a planar ring as is.
func (s *Server) simplify(ring orb.Ring, maxVertices int, planar bool) (orb.Ring, error) {
	if planar {
		return s.simplifier.Simplify(ring, maxVertices)
	}

	projected, err := s.simplifier.Simplify(zones.ToPlanar(ring), maxVertices)
	if err != nil {
		return nil, err
	}
	return zones.ToGeographic(projected), nil
}

func parseBBox(raw string) (orb.Bound, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox needs 4 comma separated numbers, got %d", len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox value %q: %w", p, err)
		}
		v[i] = f
	}

	if v[0] > v[2] || v[1] > v[3] {
		return orb.Bound{}, fmt.Errorf("bbox min exceeds max")
	}
	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

// writeError maps engine errors to status codes. Repair failures and
// anything unexpected are server errors.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var (
		validation *reduce.ValidationError
		stall      *reduce.NoRemovableVertexError
	)
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &stall):
		status = http.StatusUnprocessableEntity
	}

	log.Printf("❌ %v\n", err)
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
