package locator

import (
	"sync"

	"homesight/server/internal/geo"
	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
)

// Radii are the concentric search distances, in kilometers, the feature
// pipeline aggregates over.
var Radii = []float64{1, 3, 5}

// RangeStore is the coarse bounding-box query the comparables store exposes.
type RangeStore interface {
	RangeQuery(minLat, maxLat, minLon, maxLon float64) ([]models.PropertyRecord, error)
}

// Locator finds comparable properties around a coordinate pair.
type Locator struct {
	store  RangeStore
	logger *logrus.Logger
}

func NewLocator(store RangeStore, logger *logrus.Logger) *Locator {
	return &Locator{
		store:  store,
		logger: logger,
	}
}

// FindWithin returns every stored property within radiusKM of the given
// point. The bounding-box query over-approximates the circle, so each
// candidate is re-checked with the exact haversine distance. Records with
// missing coordinates are skipped. A store failure degrades to an empty
// result; absence of neighbors is a normal outcome downstream.
func (l *Locator) FindWithin(lat, lon, radiusKM float64) []models.PropertyRecord {
	bound := geo.BoundingBox(lat, lon, radiusKM)

	candidates, err := l.store.RangeQuery(bound.Min[1], bound.Max[1], bound.Min[0], bound.Max[0])
	if err != nil {
		l.logger.WithError(err).WithFields(logrus.Fields{
			"latitude":  lat,
			"longitude": lon,
			"radius_km": radiusKM,
		}).Error("Range query failed, treating as zero neighbors")
		return nil
	}

	var nearby []models.PropertyRecord
	for _, candidate := range candidates {
		if !candidate.HasCoordinates() {
			continue
		}
		distance := geo.HaversineKM(lat, lon, *candidate.Latitude, *candidate.Longitude)
		if distance <= radiusKM {
			nearby = append(nearby, candidate)
		}
	}

	l.logger.WithFields(logrus.Fields{
		"radius_km":  radiusKM,
		"candidates": len(candidates),
		"nearby":     len(nearby),
	}).Debug("Resolved neighborhood")

	return nearby
}

// FindAllRadii fans out one FindWithin per radius and joins the results.
// Each radius is independent, so they run concurrently.
func (l *Locator) FindAllRadii(lat, lon float64, radii []float64) map[float64][]models.PropertyRecord {
	results := make(map[float64][]models.PropertyRecord, len(radii))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, radius := range radii {
		wg.Add(1)
		go func(r float64) {
			defer wg.Done()
			nearby := l.FindWithin(lat, lon, r)
			mu.Lock()
			results[r] = nearby
			mu.Unlock()
		}(radius)
	}
	wg.Wait()

	return results
}
