package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestHasCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  *float64
		lon  *float64
		want bool
	}{
		{"both present", floatPtr(53.35), floatPtr(-6.26), true},
		{"missing longitude", floatPtr(53.35), nil, false},
		{"missing both", nil, nil, false},
		{"latitude out of range", floatPtr(91), floatPtr(-6.26), false},
		{"longitude out of range", floatPtr(53.35), floatPtr(181), false},
		{"boundary values", floatPtr(-90), floatPtr(180), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PropertyRecord{Latitude: tt.lat, Longitude: tt.lon}
			assert.Equal(t, tt.want, p.HasCoordinates())
		})
	}
}

func TestPricePerSqm(t *testing.T) {
	p := PropertyRecord{SalePrice: floatPtr(500000), FloorArea: floatPtr(100)}
	value, ok := p.PricePerSqm()
	assert.True(t, ok)
	assert.Equal(t, 5000.0, value)

	p = PropertyRecord{SalePrice: floatPtr(500000), FloorArea: floatPtr(0)}
	_, ok = p.PricePerSqm()
	assert.False(t, ok)

	p = PropertyRecord{FloorArea: floatPtr(100)}
	_, ok = p.PricePerSqm()
	assert.False(t, ok)
}

func TestPriceDelta(t *testing.T) {
	p := PropertyRecord{SalePrice: floatPtr(510000), AskingPrice: floatPtr(495000)}
	value, ok := p.PriceDelta()
	assert.True(t, ok)
	assert.Equal(t, 15000.0, value)

	p = PropertyRecord{SalePrice: floatPtr(510000)}
	_, ok = p.PriceDelta()
	assert.False(t, ok)
}

func TestDaysOnMarket(t *testing.T) {
	listed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sold := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	p := PropertyRecord{FirstListDate: &listed, SaleDate: &sold}
	days, ok := p.DaysOnMarket()
	assert.True(t, ok)
	assert.Equal(t, 60.0, days)

	p = PropertyRecord{SaleDate: &sold}
	_, ok = p.DaysOnMarket()
	assert.False(t, ok)
}
