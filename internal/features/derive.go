package features

import (
	"homesight/server/internal/locator"
	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
)

// Deriver runs the full feature-derivation pipeline for one subject
// property: categorize, locate neighbors per radius, aggregate, assemble
// and sanitize.
type Deriver struct {
	locator    *locator.Locator
	aggregator *Aggregator
	logger     *logrus.Logger
}

func NewDeriver(loc *locator.Locator, aggregator *Aggregator, logger *logrus.Logger) *Deriver {
	return &Deriver{
		locator:    loc,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Derive turns a raw property payload into the assembled, JSON-safe
// feature record. Missing coordinates disable the spatial metrics; every
// radius still reports a zero neighbor count.
func (d *Deriver) Derive(raw map[string]interface{}) map[string]interface{} {
	record := models.ParseRecord(raw)

	var groups []map[string]interface{}
	var combined []models.PropertyRecord

	if record.HasCoordinates() {
		byRadius := d.locator.FindAllRadii(*record.Latitude, *record.Longitude, locator.Radii)

		for _, radius := range locator.Radii {
			groups = append(groups, d.aggregator.Aggregate(byRadius[radius], radius))
		}

		// The radii are concentric, so the widest set already contains
		// every neighbor exactly once.
		combined = byRadius[locator.Radii[len(locator.Radii)-1]]
	} else {
		d.logger.Warn("Latitude or longitude missing, skipping nearby property metrics")
		for _, radius := range locator.Radii {
			groups = append(groups, d.aggregator.Aggregate(nil, radius))
		}
	}

	groups = append(groups, d.aggregator.Trends(combined))

	assembled := Assemble(record, raw, groups...)
	return Sanitize(assembled).(map[string]interface{})
}
