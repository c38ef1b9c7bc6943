package zones

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// prefix the key with 'zone/' to leave room for other record kinds
const keyPrefix = "zone/"

// ErrZoneNotFound is returned by Store.Get for unknown ids.
var ErrZoneNotFound = errors.New("zone not found")

// Store persists zones in LevelDB as GeoJSON features.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens or creates the LevelDB directory at path.
func OpenStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open zone store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenMemStore opens a store that lives only in memory.
func OpenMemStore() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory zone store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes zones in a single batch, replacing zones with the same ids.
func (s *Store) Put(zones ...Zone) error {
	batch := new(leveldb.Batch)
	for _, z := range zones {
		data, err := z.Feature().MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode zone %s: %w", z.ID, err)
		}
		batch.Put(zoneKey(z.ID), data)
	}

	var writeOpts = &opt.WriteOptions{
		NoWriteMerge: true,
		Sync:         true,
	}
	return s.db.Write(batch, writeOpts)
}

// Get looks up a zone by id.
func (s *Store) Get(id string) (Zone, error) {
	data, err := s.db.Get(zoneKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Zone{}, fmt.Errorf("%w: %s", ErrZoneNotFound, id)
	}
	if err != nil {
		return Zone{}, err
	}
	return decodeZone(data)
}

// Delete removes a zone. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) error {
	return s.db.Delete(zoneKey(id), nil)
}

// All returns every stored zone in key order.
func (s *Store) All() ([]Zone, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()

	var zones []Zone
	for iter.Next() {
		z, err := decodeZone(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Key(), err)
		}
		zones = append(zones, z)
	}
	return zones, iter.Error()
}

func zoneKey(id string) []byte {
	return []byte(keyPrefix + id)
}

func decodeZone(data []byte) (Zone, error) {
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return Zone{}, err
	}

	poly, ok := f.Geometry.(orb.Polygon)
	if !ok || len(poly) == 0 {
		return Zone{}, fmt.Errorf("stored feature is a %T, not a polygon", f.Geometry)
	}

	return Zone{
		ID:         idString(f.ID),
		Name:       propString(f.Properties, "name"),
		Ring:       poly[0],
		Properties: f.Properties,
	}, nil
}
