package features

import (
	"fmt"
	"strconv"
	"time"

	"homesight/server/internal/models"

	"github.com/sirupsen/logrus"
)

// TimeWindows are the trailing windows, in days, the time-scoped metric
// variants cover.
var TimeWindows = []int{30, 90, 180}

// Aggregator computes neighborhood summary statistics. Every statistic
// considers only records carrying a usable value for its field; an empty
// participant set omits the statistic rather than dividing by zero.
type Aggregator struct {
	// ReferenceIncome is the fixed income the price-to-income ratio is
	// computed against.
	ReferenceIncome float64

	// Now anchors the trailing time windows. Evaluated once per request
	// so the windows track the wall clock; injectable for tests.
	Now func() time.Time

	logger *logrus.Logger
}

func NewAggregator(referenceIncome float64, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		ReferenceIncome: referenceIncome,
		Now:             time.Now,
		logger:          logger,
	}
}

func radiusKey(radiusKM float64) string {
	return strconv.FormatFloat(radiusKM, 'f', -1, 64)
}

// Aggregate computes the full metric family for one radius. Metric keys
// are namespaced by the radius so no two radii collide.
func (a *Aggregator) Aggregate(records []models.PropertyRecord, radiusKM float64) map[string]interface{} {
	metrics := make(map[string]interface{})
	r := radiusKey(radiusKM)

	// Participating value sets, one pass over the input.
	var salePrices, askingPrices, firstListPrices []float64
	var priceDeltas, pricesPerSqm, sizes []float64
	var bedCounts, bathCounts []float64
	var berCategories, typeCategories, knownBERs []string

	for i := range records {
		rec := &records[i]
		if rec.SalePrice != nil {
			salePrices = append(salePrices, *rec.SalePrice)
		}
		if rec.AskingPrice != nil {
			askingPrices = append(askingPrices, *rec.AskingPrice)
		}
		if rec.FirstListPrice != nil {
			firstListPrices = append(firstListPrices, *rec.FirstListPrice)
		}
		if delta, ok := rec.PriceDelta(); ok {
			priceDeltas = append(priceDeltas, delta)
		}
		if perSqm, ok := rec.PricePerSqm(); ok {
			pricesPerSqm = append(pricesPerSqm, perSqm)
		}
		if rec.FloorArea != nil {
			sizes = append(sizes, *rec.FloorArea)
		}
		if rec.Beds != nil {
			bedCounts = append(bedCounts, float64(*rec.Beds))
		}
		if rec.Baths != nil {
			bathCounts = append(bathCounts, float64(*rec.Baths))
		}

		ber := BERCategory(rec.EnergyRating)
		berCategories = append(berCategories, ber)
		if ber != CategoryUnknown {
			knownBERs = append(knownBERs, ber)
		}
		typeCategories = append(typeCategories, PropertyTypeCategory(rec.PropertyType))
	}

	// Model-facing metrics, one namespace per radius.
	metrics[fmt.Sprintf("nearby_properties_count_within_%skm", r)] = len(records)
	putCentral(metrics, fmt.Sprintf("avg_sold_price_within_%skm", r), fmt.Sprintf("median_sold_price_within_%skm", r), salePrices)
	putCentral(metrics, fmt.Sprintf("avg_asking_price_within_%skm", r), fmt.Sprintf("median_asking_price_within_%skm", r), askingPrices)
	putCentral(metrics, fmt.Sprintf("avg_price_delta_within_%skm", r), fmt.Sprintf("median_price_delta_within_%skm", r), priceDeltas)
	putCentral(metrics, fmt.Sprintf("avg_price_per_sqm_within_%skm", r), fmt.Sprintf("median_price_per_sqm_within_%skm", r), pricesPerSqm)
	if avg, ok := mean(bedCounts); ok {
		metrics[fmt.Sprintf("avg_bedrooms_within_%skm", r)] = avg
	}
	if avg, ok := mean(bathCounts); ok {
		metrics[fmt.Sprintf("avg_bathrooms_within_%skm", r)] = avg
	}
	if common, ok := mode(knownBERs); ok {
		metrics[fmt.Sprintf("most_common_ber_rating_within_%skm", r)] = common
	}

	// Categorical distributions, percentage shares summing to 100.
	for category, share := range distribution(berCategories) {
		metrics[fmt.Sprintf("%skm_ber_dist_%s", r, category)] = round2(share)
	}
	for category, share := range distribution(typeCategories) {
		metrics[fmt.Sprintf("%skm_property_type_dist_%s", r, category)] = round2(share)
	}

	// General neighborhood metrics.
	if avg, ok := mean(sizes); ok {
		metrics[fmt.Sprintf("%skm_avg_property_size", r)] = avg
	}
	if med, ok := median(bedCounts); ok {
		metrics[fmt.Sprintf("%skm_median_beds", r)] = med
	}
	if med, ok := median(bathCounts); ok {
		metrics[fmt.Sprintf("%skm_median_baths", r)] = med
	}
	if med, ok := median(salePrices); ok {
		if ratio, ok := safeDivide(med, a.ReferenceIncome); ok {
			metrics[fmt.Sprintf("%skm_price_to_income_ratio", r)] = round2(ratio)
		}
	}
	if meanSale, ok := mean(salePrices); ok {
		if meanList, ok := mean(firstListPrices); ok {
			if growth, ok := safeDivide(meanSale, meanList); ok {
				metrics[fmt.Sprintf("%skm_price_growth_rate", r)] = round2((growth - 1) * 100)
			}
		}
	}

	// Time-windowed variants over the trailing N days. One anchor per
	// call keeps the windows consistent with each other.
	now := a.Now()
	for _, days := range TimeWindows {
		a.aggregateWindow(metrics, records, r, days, now)
	}

	return metrics
}

// aggregateWindow restricts the input to sales within the trailing window
// and computes the windowed statistic family.
func (a *Aggregator) aggregateWindow(metrics map[string]interface{}, records []models.PropertyRecord, r string, days int, now time.Time) {
	cutoff := now.AddDate(0, 0, -days)

	var salePrices, askingPrices, pricesPerSqm, daysOnMarket []float64
	for i := range records {
		rec := &records[i]
		if rec.SaleDate == nil || rec.SaleDate.Before(cutoff) {
			continue
		}
		if rec.SalePrice != nil {
			salePrices = append(salePrices, *rec.SalePrice)
		}
		if rec.AskingPrice != nil {
			askingPrices = append(askingPrices, *rec.AskingPrice)
		}
		if perSqm, ok := rec.PricePerSqm(); ok {
			pricesPerSqm = append(pricesPerSqm, perSqm)
		}
		if dom, ok := rec.DaysOnMarket(); ok {
			daysOnMarket = append(daysOnMarket, dom)
		}
	}

	metrics[fmt.Sprintf("%dd_%skm_num_properties_sold", days, r)] = len(salePrices)
	if med, ok := median(salePrices); ok {
		metrics[fmt.Sprintf("%dd_%skm_median_sold_price", days, r)] = med
	}
	if avg, ok := mean(askingPrices); ok {
		metrics[fmt.Sprintf("%dd_%skm_avg_asking_price", days, r)] = avg
	}
	if avg, ok := mean(daysOnMarket); ok {
		metrics[fmt.Sprintf("%dd_%skm_avg_days_on_market", days, r)] = avg
	}
	if med, ok := median(pricesPerSqm); ok {
		metrics[fmt.Sprintf("%dd_%skm_median_price_per_sqm", days, r)] = med
	}
}

// putCentral stores mean and median of a value set when it is non-empty.
func putCentral(metrics map[string]interface{}, avgKey, medianKey string, values []float64) {
	if avg, ok := mean(values); ok {
		metrics[avgKey] = avg
	}
	if med, ok := median(values); ok {
		metrics[medianKey] = med
	}
}

// Trends computes the cross-radius market trend and benchmark metrics over
// the union of all radii's neighbors.
func (a *Aggregator) Trends(records []models.PropertyRecord) map[string]interface{} {
	metrics := make(map[string]interface{})
	if len(records) == 0 {
		return metrics
	}

	type sale struct {
		price float64
		date  *time.Time
	}
	var sales []sale
	for i := range records {
		rec := &records[i]
		if rec.SalePrice == nil {
			continue
		}
		sales = append(sales, sale{price: *rec.SalePrice, date: rec.SaleDate})
	}
	if len(sales) == 0 {
		return metrics
	}

	// Market trend: recent 30-day mean sale price against the older mean.
	now := a.Now()
	cutoff := now.AddDate(0, 0, -30)
	var recent, older []float64
	for _, s := range sales {
		if s.date == nil {
			continue
		}
		if s.date.Before(cutoff) {
			older = append(older, s.price)
		} else {
			recent = append(recent, s.price)
		}
	}
	if recentAvg, ok := mean(recent); ok {
		if olderAvg, ok := mean(older); ok && olderAvg != 0 {
			metrics["market_trend_30_days"] = round2((recentAvg - olderAvg) / olderAvg * 100)
		}
	}

	// Benchmark ratios around the median sale price.
	var prices []float64
	for _, s := range sales {
		prices = append(prices, s.price)
	}
	med, _ := median(prices)
	overallAvg, _ := mean(prices)

	var atOrBelow, atOrAbove []float64
	for _, p := range prices {
		if p <= med {
			atOrBelow = append(atOrBelow, p)
		}
		if p >= med {
			atOrAbove = append(atOrAbove, p)
		}
	}
	if belowAvg, ok := mean(atOrBelow); ok && belowAvg != 0 {
		metrics["price_benchmark_ratio_low_high"] = round2(overallAvg / belowAvg)
	}
	if aboveAvg, ok := mean(atOrAbove); ok {
		if ratio, ok := safeDivide(aboveAvg, overallAvg); ok {
			metrics["price_benchmark_ratio_high_overall"] = round2(ratio)
		}
	}

	// Mean sale price over each trailing window.
	for _, days := range TimeWindows {
		windowCutoff := now.AddDate(0, 0, -days)
		var window []float64
		for _, s := range sales {
			if s.date != nil && !s.date.Before(windowCutoff) {
				window = append(window, s.price)
			}
		}
		if avg, ok := mean(window); ok {
			metrics[fmt.Sprintf("price_trend_%d_days", days)] = avg
		}
	}

	return metrics
}
