package features

import (
	"math"
	"strings"
)

// Category labels are the v4 feature-set buckets. The scoring model was
// trained against these exact strings; changing a threshold or label means
// shipping a new schema version.

const CategoryUnknown = "Unknown"

var apartmentTypes = map[string]bool{
	"apartment": true,
	"flat":      true,
	"studio":    true,
}

var houseTypes = map[string]bool{
	"house":          true,
	"bungalow":       true,
	"cottage":        true,
	"villa":          true,
	"townhouse":      true,
	"end of terrace": true,
	"terrace":        true,
	"semi-d":         true,
	"detached":       true,
	"duplex":         true,
	"semi-detached":  true,
}

// BedCategory buckets a bedroom count. A nil count is Unknown.
func BedCategory(beds *int) string {
	if beds == nil {
		return CategoryUnknown
	}
	switch {
	case *beds <= 1:
		return "Studio/1 Bed"
	case *beds == 2:
		return "2 Bed"
	case *beds == 3:
		return "3 Bed"
	default:
		return "4+ Bed"
	}
}

// BathCategory buckets a bathroom count. A nil count is Unknown.
func BathCategory(baths *int) string {
	if baths == nil {
		return CategoryUnknown
	}
	switch {
	case *baths <= 1:
		return "1 or less"
	case *baths == 2:
		return "2"
	case *baths == 3:
		return "3"
	default:
		return "4 or more"
	}
}

// SizeCategory buckets a floor area in square meters. Boundary values
// belong to the upper-starting band: exactly 50 is Medium, not Small.
func SizeCategory(size *float64) string {
	if size == nil {
		return CategoryUnknown
	}
	switch {
	case *size < 50:
		return "Small"
	case *size < 100:
		return "Medium"
	case *size < 150:
		return "Large"
	default:
		return "Very Large"
	}
}

// PropertyTypeCategory groups free-form property types into Apartment,
// House or Other by case-insensitive exact match against curated lists.
func PropertyTypeCategory(propertyType string) string {
	propertyType = strings.ToLower(strings.TrimSpace(propertyType))
	if propertyType == "" {
		return CategoryUnknown
	}
	if apartmentTypes[propertyType] {
		return "Apartment"
	}
	if houseTypes[propertyType] {
		return "House"
	}
	return "Other"
}

// BERCategory collapses a BER rating to its letter grade: A1/A2/A3 → A and
// so on. Unmapped or empty ratings are Unknown.
func BERCategory(rating string) string {
	rating = strings.ToUpper(strings.TrimSpace(rating))
	switch rating {
	case "A1", "A2", "A3", "A":
		return "A"
	case "B1", "B2", "B3", "B":
		return "B"
	case "C1", "C2", "C3", "C":
		return "C"
	case "D1", "D2", "D":
		return "D"
	case "E1", "E2", "E":
		return "E"
	case "F":
		return "F"
	case "G":
		return "G"
	default:
		return CategoryUnknown
	}
}

// berOrder runs from best (A) to worst (G), sub-grades included.
var berOrder = []string{
	"A", "A1", "A2", "A3", "B", "B1", "B2", "B3",
	"C", "C1", "C2", "C3", "D", "D1", "D2",
	"E", "E1", "E2", "F", "G",
}

// BERToNumeric maps a BER rating onto a descending numeric scale where A1
// scores highest and G lowest. Unmapped ratings yield NaN, which the
// assembler later scrubs to null.
func BERToNumeric(rating string) float64 {
	rating = strings.ToUpper(strings.TrimSpace(rating))
	for i, grade := range berOrder {
		if grade == rating {
			return float64(len(berOrder) - i)
		}
	}
	return math.NaN()
}
