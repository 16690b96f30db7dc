package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRecord(t *testing.T) {
	raw := map[string]interface{}{
		"id":            float64(42),
		"address":       "  10 Example Road, Dublin 4 ",
		"beds":          "3 bed",
		"baths":         float64(2),
		"size":          "118.5",
		"property_type": "Terraced House",
		"ber_rating":    "B2",
		"latitude":      53.3311,
		"longitude":     "-6.2439",
		"asking_price":  float64(495000),
		"sale_price":    float64(510000),
		"sale_date":     "2026-05-14",
	}

	p := ParseRecord(raw)

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "10 Example Road, Dublin 4", p.Address)
	assert.Equal(t, "Terraced House", p.PropertyType)
	assert.Equal(t, "B2", p.EnergyRating)

	if assert.NotNil(t, p.Beds) {
		assert.Equal(t, 3, *p.Beds)
	}
	if assert.NotNil(t, p.Baths) {
		assert.Equal(t, 2, *p.Baths)
	}
	if assert.NotNil(t, p.FloorArea) {
		assert.Equal(t, 118.5, *p.FloorArea)
	}
	if assert.NotNil(t, p.Longitude) {
		assert.Equal(t, -6.2439, *p.Longitude)
	}
	if assert.NotNil(t, p.SaleDate) {
		assert.Equal(t, time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC), *p.SaleDate)
	}
	assert.Nil(t, p.FirstListPrice)
	assert.Nil(t, p.FirstListDate)
}

func TestParseRecordFloorAreaPrefersCanonicalKey(t *testing.T) {
	p := ParseRecord(map[string]interface{}{
		"myhome_floor_area_value": float64(95),
		"size":                    float64(80),
	})

	if assert.NotNil(t, p.FloorArea) {
		assert.Equal(t, 95.0, *p.FloorArea)
	}
}

func TestParseRecordEnergyRatingFallback(t *testing.T) {
	p := ParseRecord(map[string]interface{}{"energy_rating": "C3"})
	assert.Equal(t, "C3", p.EnergyRating)

	p = ParseRecord(map[string]interface{}{
		"ber_rating":    "A3",
		"energy_rating": "C3",
	})
	assert.Equal(t, "A3", p.EnergyRating)
}

func TestParseRecordUnparseableFieldsStayNil(t *testing.T) {
	p := ParseRecord(map[string]interface{}{
		"beds":      "studio",
		"size":      "n/a",
		"latitude":  "not-a-number",
		"sale_date": "14/05/2026",
	})

	assert.Nil(t, p.Beds)
	assert.Nil(t, p.FloorArea)
	assert.Nil(t, p.Latitude)
	assert.Nil(t, p.SaleDate)
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"float64", 3.5, 3.5, true},
		{"int", 7, 7, true},
		{"numeric string", " 250000 ", 250000, true},
		{"garbage string", "POA", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
		ok    bool
	}{
		{"plain digits", "4", 4, true},
		{"digits with suffix", "4 bed", 4, true},
		{"digits with prefix", "approx 3", 3, true},
		{"float truncates", 2.9, 2, true},
		{"no digits", "studio", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceDate(t *testing.T) {
	got, ok := CoerceDate("2026-01-31")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), got)

	got, ok = CoerceDate("2026-01-31T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 10, got.Hour())

	_, ok = CoerceDate("31-01-2026")
	assert.False(t, ok)

	_, ok = CoerceDate(nil)
	assert.False(t, ok)
}
