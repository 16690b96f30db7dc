package models

import "time"

// PropertyRecord is a single comparable property as stored in the
// comparables corpus. Pointer fields are nullable: a nil value means the
// source never provided the field or it could not be coerced.
type PropertyRecord struct {
	ID             int64      `json:"id"`
	Address        string     `json:"address"`
	Beds           *int       `json:"beds"`
	Baths          *int       `json:"baths"`
	FloorArea      *float64   `json:"myhome_floor_area_value"`
	PropertyType   string     `json:"property_type"`
	EnergyRating   string     `json:"ber_rating"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	AskingPrice    *float64   `json:"asking_price"`
	SalePrice      *float64   `json:"sale_price"`
	FirstListPrice *float64   `json:"first_list_price"`
	FirstListDate  *time.Time `json:"first_list_date"`
	SaleDate       *time.Time `json:"sale_date"`
	CreatedAt      time.Time  `json:"created_at"`
}

// HasCoordinates reports whether the record carries a usable coordinate
// pair. Both must be present and within valid ranges; anything else
// disables spatial aggregation for the record.
func (p *PropertyRecord) HasCoordinates() bool {
	if p.Latitude == nil || p.Longitude == nil {
		return false
	}
	lat, lon := *p.Latitude, *p.Longitude
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// PricePerSqm returns sale price divided by floor area, or false when
// either side is missing or the area is zero.
func (p *PropertyRecord) PricePerSqm() (float64, bool) {
	if p.SalePrice == nil || p.FloorArea == nil || *p.FloorArea <= 0 {
		return 0, false
	}
	return *p.SalePrice / *p.FloorArea, true
}

// PriceDelta returns sale price minus asking price when both are present.
func (p *PropertyRecord) PriceDelta() (float64, bool) {
	if p.SalePrice == nil || p.AskingPrice == nil {
		return 0, false
	}
	return *p.SalePrice - *p.AskingPrice, true
}

// DaysOnMarket returns the number of days between first listing and sale.
func (p *PropertyRecord) DaysOnMarket() (float64, bool) {
	if p.FirstListDate == nil || p.SaleDate == nil {
		return 0, false
	}
	return p.SaleDate.Sub(*p.FirstListDate).Hours() / 24, true
}
