package prediction

import (
	"fmt"
	"strings"

	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
)

// radiusMetrics are the per-radius neighborhood features the model was
// trained on.
var radiusMetrics = []string{
	"nearby_properties_count",
	"avg_sold_price",
	"median_sold_price",
	"avg_asking_price",
	"median_asking_price",
	"avg_price_delta",
	"median_price_delta",
	"avg_price_per_sqm",
	"median_price_per_sqm",
	"avg_bedrooms",
	"avg_bathrooms",
}

var radii = []int{1, 3, 5}

// Result is the terminal output of the pipeline: a price estimate, or a
// structured error the transport layer maps to a status code.
type Result struct {
	Prediction *float64 `json:"prediction,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Adapter turns an assembled feature record into the exact row the model
// expects and invokes it once.
type Adapter struct {
	model  Model
	logger *logrus.Logger
}

func NewAdapter(model Model, logger *logrus.Logger) *Adapter {
	return &Adapter{
		model:  model,
		logger: logger,
	}
}

// Predict scores one feature record. Any failure comes back as a Result
// carrying an error string; the only fatal outcome is for this request.
func (a *Adapter) Predict(data map[string]interface{}) Result {
	row := a.prepareRow(data)

	prediction, err := a.model.Score(row)
	if err != nil {
		a.logger.WithError(err).Error("Scoring failed")
		return Result{Error: err.Error()}
	}

	return Result{Prediction: &prediction}
}

// prepareRow selects and re-orders the feature record into the model's
// declared column set. Missing columns are backfilled here as a final
// safety net even though assembly already reconciled once.
func (a *Adapter) prepareRow(data map[string]interface{}) map[string]interface{} {
	features := make(map[string]interface{})

	originalInputs, _ := data["originalInputs"].(map[string]interface{})

	// Basic numeric features; size is aliased to the floor-area column the
	// model was trained on.
	for _, name := range []string{"beds", "baths", "size", "latitude", "longitude"} {
		value, ok := models.CoerceFloat(originalInputs[name])
		if !ok {
			value = 0
		}
		column := name
		if name == "size" {
			column = "myhome_floor_area_value"
		}
		features[column] = value
	}

	for _, name := range []string{"bedCategory", "bathCategory", "propertyTypeCategory", "berCategory", "sizeCategory"} {
		value := models.CoerceString(data[name])
		if value == "" {
			value = "Unknown"
		}
		features[name] = value
	}

	features["property_type"] = strings.ToLower(models.CoerceString(originalInputs["property_type"]))

	energyRating := models.CoerceString(originalInputs["ber_rating"])
	if energyRating == "" {
		energyRating = models.CoerceString(originalInputs["energy_rating"])
	}
	features["energy_rating"] = energyRating

	if numeric, ok := models.CoerceFloat(data["energy_rating_numeric"]); ok {
		features["energy_rating_numeric"] = numeric
	} else {
		features["energy_rating_numeric"] = float64(0)
	}

	for _, radius := range radii {
		for _, metric := range radiusMetrics {
			name := fmt.Sprintf("%s_within_%dkm", metric, radius)
			if value, ok := models.CoerceFloat(data[name]); ok {
				features[name] = value
			} else {
				features[name] = float64(0)
			}
		}

		berName := fmt.Sprintf("most_common_ber_rating_within_%dkm", radius)
		berValue := models.CoerceString(data[berName])
		if berValue == "" {
			berValue = "Unknown"
		}
		features[berName] = berValue
	}

	// Align with the declared columns: fill what is missing, drop the rest.
	declared := a.model.InputColumns()
	row := make(map[string]interface{}, len(declared))
	var missing, extra []string
	for _, column := range declared {
		if value, ok := features[column]; ok {
			row[column] = value
		} else {
			row[column] = float64(0)
			missing = append(missing, column)
		}
	}
	declaredSet := make(map[string]bool, len(declared))
	for _, column := range declared {
		declaredSet[column] = true
	}
	for name := range features {
		if !declaredSet[name] {
			extra = append(extra, name)
		}
	}

	if len(missing) > 0 {
		a.logger.WithField("columns", missing).Warn("Missing features filled with zero")
	}
	if len(extra) > 0 {
		a.logger.WithField("columns", extra).Warn("Extra features ignored by the model")
	}

	return row
}
