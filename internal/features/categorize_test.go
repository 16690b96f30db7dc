package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestBedCategory(t *testing.T) {
	tests := []struct {
		name     string
		beds     *int
		expected string
	}{
		{"Missing beds", nil, "Unknown"},
		{"Studio", intPtr(0), "Studio/1 Bed"},
		{"One bed", intPtr(1), "Studio/1 Bed"},
		{"Two beds", intPtr(2), "2 Bed"},
		{"Three beds", intPtr(3), "3 Bed"},
		{"Four beds", intPtr(4), "4+ Bed"},
		{"Seven beds", intPtr(7), "4+ Bed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BedCategory(tt.beds))
		})
	}
}

func TestBathCategory(t *testing.T) {
	tests := []struct {
		name     string
		baths    *int
		expected string
	}{
		{"Missing baths", nil, "Unknown"},
		{"One bath", intPtr(1), "1 or less"},
		{"Two baths", intPtr(2), "2"},
		{"Three baths", intPtr(3), "3"},
		{"Four baths", intPtr(4), "4 or more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BathCategory(tt.baths))
		})
	}
}

func TestSizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		size     *float64
		expected string
	}{
		{"Missing size", nil, "Unknown"},
		{"Small", floatPtr(49.9), "Small"},
		{"Boundary belongs to upper band", floatPtr(50), "Medium"},
		{"Medium", floatPtr(99.9), "Medium"},
		{"Large boundary", floatPtr(100), "Large"},
		{"Very large boundary", floatPtr(150), "Very Large"},
		{"Very large", floatPtr(300), "Very Large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SizeCategory(tt.size))
		})
	}
}

func TestPropertyTypeCategory(t *testing.T) {
	tests := []struct {
		name         string
		propertyType string
		expected     string
	}{
		{"Empty", "", "Unknown"},
		{"Apartment", "Apartment", "Apartment"},
		{"Flat lowercase", "flat", "Apartment"},
		{"Studio with spaces", "  Studio  ", "Apartment"},
		{"House", "House", "House"},
		{"Semi-detached", "Semi-Detached", "House"},
		{"End of terrace", "End of Terrace", "House"},
		{"Bungalow", "bungalow", "House"},
		{"Site", "Site", "Other"},
		{"Commercial", "retail unit", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PropertyTypeCategory(tt.propertyType))
		})
	}
}

func TestBERCategory(t *testing.T) {
	tests := []struct {
		name     string
		rating   string
		expected string
	}{
		{"Empty", "", "Unknown"},
		{"A1 sub-grade", "A1", "A"},
		{"A bare", "A", "A"},
		{"B3", "B3", "B"},
		{"Lowercase g", "g", "G"},
		{"Lowercase c2", "c2", "C"},
		{"D1", "D1", "D"},
		{"E2", "E2", "E"},
		{"F", "F", "F"},
		{"Whitespace", "  B1  ", "B"},
		{"Exempt placeholder", "--", "Unknown"},
		{"Garbage", "Z9", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BERCategory(tt.rating))
		})
	}
}

func TestBERCategoryClosedSet(t *testing.T) {
	valid := map[string]bool{
		"A": true, "B": true, "C": true, "D": true,
		"E": true, "F": true, "G": true, "Unknown": true,
	}
	inputs := []string{"A1", "B2", "c3", "D", "e1", "F", "g", "", "--", "H1", "banana"}
	for _, input := range inputs {
		assert.True(t, valid[BERCategory(input)], "input %q escaped the label set", input)
	}
}

func TestBERToNumeric(t *testing.T) {
	// A1 outscores every worse grade; G is the floor.
	assert.Equal(t, float64(19), BERToNumeric("A1"))
	assert.Equal(t, float64(1), BERToNumeric("G"))
	assert.Greater(t, BERToNumeric("B1"), BERToNumeric("C1"))
	assert.True(t, math.IsNaN(BERToNumeric("")))
	assert.True(t, math.IsNaN(BERToNumeric("--")))
}
