package locator

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"homesight/server/internal/geo"
	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// fakeStore serves records from memory, honoring the bounding-box filter
// the way the sqlite store does.
type fakeStore struct {
	mu      sync.Mutex
	records []models.PropertyRecord
	err     error
	queries int
}

func (s *fakeStore) RangeQuery(minLat, maxLat, minLon, maxLon float64) ([]models.PropertyRecord, error) {
	s.mu.Lock()
	s.queries++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var inside []models.PropertyRecord
	for _, rec := range s.records {
		if rec.Latitude == nil || rec.Longitude == nil {
			continue
		}
		if *rec.Latitude >= minLat && *rec.Latitude <= maxLat &&
			*rec.Longitude >= minLon && *rec.Longitude <= maxLon {
			inside = append(inside, rec)
		}
	}
	return inside, nil
}

func recordAt(id int64, lat, lon float64) models.PropertyRecord {
	return models.PropertyRecord{ID: id, Latitude: &lat, Longitude: &lon}
}

func TestFindWithinNoFalsePositives(t *testing.T) {
	center := [2]float64{53.3498, -6.2603}

	// Seed a deterministic cloud of properties around Dublin
	rng := rand.New(rand.NewSource(42))
	store := &fakeStore{}
	for i := 0; i < 500; i++ {
		lat := center[0] + (rng.Float64()-0.5)*0.2
		lon := center[1] + (rng.Float64()-0.5)*0.3
		store.records = append(store.records, recordAt(int64(i+1), lat, lon))
	}

	loc := NewLocator(store, logrus.New())

	for _, radius := range Radii {
		nearby := loc.FindWithin(center[0], center[1], radius)

		// No false positives
		for _, rec := range nearby {
			distance := geo.HaversineKM(center[0], center[1], *rec.Latitude, *rec.Longitude)
			assert.LessOrEqual(t, distance, radius)
		}

		// No false negatives versus a brute-force scan
		var expected int
		for _, rec := range store.records {
			if geo.HaversineKM(center[0], center[1], *rec.Latitude, *rec.Longitude) <= radius {
				expected++
			}
		}
		assert.Equal(t, expected, len(nearby), "radius %v km", radius)
	}
}

func TestFindWithinSkipsMissingCoordinates(t *testing.T) {
	lat := 53.35
	store := &fakeStore{
		records: []models.PropertyRecord{
			recordAt(1, 53.3501, -6.2601),
			{ID: 2},                // no coordinates at all
			{ID: 3, Latitude: &lat}, // longitude missing
		},
	}

	loc := NewLocator(store, logrus.New())
	nearby := loc.FindWithin(53.35, -6.26, 1)

	assert.Len(t, nearby, 1)
	assert.Equal(t, int64(1), nearby[0].ID)
}

func TestFindWithinStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("store unreachable")}
	loc := NewLocator(store, logrus.New())

	nearby := loc.FindWithin(53.35, -6.26, 3)
	assert.Empty(t, nearby)
}

func TestFindWithinCornerCandidatesFiltered(t *testing.T) {
	// Place a record inside the 1km bounding box but outside the circle:
	// the box corner is ~sqrt(2) km out.
	cornerLat := 53.35 + 0.95/111.32
	cornerLon := -6.26 + 0.95/(111.32*0.5968)
	store := &fakeStore{
		records: []models.PropertyRecord{recordAt(1, cornerLat, cornerLon)},
	}

	loc := NewLocator(store, logrus.New())

	nearby := loc.FindWithin(53.35, -6.26, 1)
	assert.Empty(t, nearby, "corner candidate must fail the exact distance check")
}

func TestFindAllRadii(t *testing.T) {
	store := &fakeStore{
		records: []models.PropertyRecord{
			recordAt(1, 53.3505, -6.2603), // ~0.08 km
			recordAt(2, 53.3678, -6.2603), // ~2 km
			recordAt(3, 53.3858, -6.2603), // ~4 km
		},
	}

	loc := NewLocator(store, logrus.New())
	results := loc.FindAllRadii(53.3498, -6.2603, Radii)

	assert.Len(t, results, 3)
	assert.Len(t, results[1.0], 1)
	assert.Len(t, results[3.0], 2)
	assert.Len(t, results[5.0], 3)
	assert.Equal(t, 3, store.queries)
}
