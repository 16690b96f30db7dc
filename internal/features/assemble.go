package features

import (
	"math"
	"strings"

	"homesight/server/config"
	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
)

// originalInputExcluded lists the raw keys never echoed back to the
// caller: sale-side fields the requester cannot know ahead of a sale, and
// scrape bookkeeping.
var originalInputExcluded = map[string]bool{
	"asking_price":           true,
	"eircode":                true,
	"local_property_tax":     true,
	"url":                    true,
	"myhome_link":            true,
	"price_per_square_meter": true,
	"sale_price":             true,
	"sale_date":              true,
	"first_list_price":       true,
	"first_list_date":        true,
}

// Assemble merges the categorical outputs, geo fields and neighborhood
// metrics for one subject property into a single flat record.
func Assemble(record models.PropertyRecord, rawInputs map[string]interface{}, metricGroups ...map[string]interface{}) map[string]interface{} {
	assembled := map[string]interface{}{
		"bedCategory":           BedCategory(record.Beds),
		"bathCategory":          BathCategory(record.Baths),
		"propertyTypeCategory":  PropertyTypeCategory(record.PropertyType),
		"berCategory":           BERCategory(record.EnergyRating),
		"sizeCategory":          SizeCategory(record.FloorArea),
		"energy_rating_numeric": BERToNumeric(record.EnergyRating),
	}

	if record.Latitude != nil {
		assembled["latitude"] = *record.Latitude
	}
	if record.Longitude != nil {
		assembled["longitude"] = *record.Longitude
	}
	if record.FloorArea != nil {
		assembled["size"] = *record.FloorArea
		// The model was trained against the scraped column name
		assembled["myhome_floor_area_value"] = *record.FloorArea
	}
	if record.Beds != nil {
		assembled["beds"] = float64(*record.Beds)
	}
	if record.Baths != nil {
		assembled["baths"] = float64(*record.Baths)
	}

	echoed := make(map[string]interface{})
	for key, value := range rawInputs {
		if !originalInputExcluded[strings.ToLower(key)] {
			echoed[key] = value
		}
	}
	assembled["originalInputs"] = echoed

	for _, group := range metricGroups {
		for key, value := range group {
			assembled[key] = value
		}
	}

	return assembled
}

// Sanitize recursively replaces NaN and Infinity values with nil. JSON has
// no representation for non-finite numbers, so none may leave the process.
func Sanitize(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		return Sanitize(float64(v))
	case map[string]interface{}:
		cleaned := make(map[string]interface{}, len(v))
		for key, elem := range v {
			cleaned[key] = Sanitize(elem)
		}
		return cleaned
	case []interface{}:
		cleaned := make([]interface{}, len(v))
		for i, elem := range v {
			cleaned[i] = Sanitize(elem)
		}
		return cleaned
	default:
		return value
	}
}

// Reconcile aligns an assembled record with the model's declared input
// schema: declared columns missing from the record get their neutral
// default, computed keys the model never declared are dropped. The
// operation is pure and idempotent; divergence is logged, never fatal.
func Reconcile(assembled map[string]interface{}, schema *config.ModelSchema, logger *logrus.Logger) map[string]interface{} {
	declared := make(map[string]bool, len(schema.Columns))
	reconciled := make(map[string]interface{}, len(schema.Columns))

	var missing, extra []string
	for _, col := range schema.Columns {
		declared[col.Name] = true
		if value, ok := assembled[col.Name]; ok && value != nil {
			reconciled[col.Name] = value
		} else {
			reconciled[col.Name] = schema.DefaultFor(col.Name)
			missing = append(missing, col.Name)
		}
	}
	for key := range assembled {
		if !declared[key] {
			extra = append(extra, key)
		}
	}

	if len(missing) > 0 {
		logger.WithFields(logrus.Fields{
			"count":   len(missing),
			"columns": missing,
		}).Warn("Filling missing model columns with defaults")
	}
	if len(extra) > 0 {
		logger.WithField("count", len(extra)).Warn("Dropping computed features the model does not declare")
	}

	return reconciled
}
