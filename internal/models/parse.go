package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var leadingDigits = regexp.MustCompile(`\d+`)

// ParseRecord converts a raw key-value record, as received from the ingest
// endpoint or any loosely typed source, into a typed PropertyRecord. All
// string-to-number coercion happens here, once; coercion failure yields a
// nil field, never an error.
func ParseRecord(raw map[string]interface{}) PropertyRecord {
	var p PropertyRecord

	if id, ok := CoerceFloat(raw["id"]); ok {
		p.ID = int64(id)
	}
	p.Address = CoerceString(raw["address"])
	p.PropertyType = CoerceString(raw["property_type"])

	p.EnergyRating = CoerceString(raw["ber_rating"])
	if p.EnergyRating == "" {
		p.EnergyRating = CoerceString(raw["energy_rating"])
	}

	if beds, ok := CoerceInt(raw["beds"]); ok {
		p.Beds = &beds
	}
	if baths, ok := CoerceInt(raw["baths"]); ok {
		p.Baths = &baths
	}

	area, ok := CoerceFloat(raw["myhome_floor_area_value"])
	if !ok {
		area, ok = CoerceFloat(raw["size"])
	}
	if ok {
		p.FloorArea = &area
	}

	if lat, ok := CoerceFloat(raw["latitude"]); ok {
		p.Latitude = &lat
	}
	if lon, ok := CoerceFloat(raw["longitude"]); ok {
		p.Longitude = &lon
	}
	if v, ok := CoerceFloat(raw["asking_price"]); ok {
		p.AskingPrice = &v
	}
	if v, ok := CoerceFloat(raw["sale_price"]); ok {
		p.SalePrice = &v
	}
	if v, ok := CoerceFloat(raw["first_list_price"]); ok {
		p.FirstListPrice = &v
	}
	if t, ok := CoerceDate(raw["first_list_date"]); ok {
		p.FirstListDate = &t
	}
	if t, ok := CoerceDate(raw["sale_date"]); ok {
		p.SaleDate = &t
	}

	return p
}

// CoerceString returns the trimmed string form of a value, or "" for nil
// and non-string types.
func CoerceString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// CoerceFloat converts numeric and numeric-string values to float64.
func CoerceFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// CoerceInt extracts an integer from numeric values or from strings such
// as "4" or "4 bed"; the first run of digits wins.
func CoerceInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		match := leadingDigits.FindString(n)
		if match == "" {
			return 0, false
		}
		i, err := strconv.Atoi(match)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// CoerceDate parses date values in either plain-date or RFC3339 form.
func CoerceDate(v interface{}) (time.Time, bool) {
	s := CoerceString(v)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
