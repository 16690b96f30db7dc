package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// earthRadiusKM matches the sphere radius the scoring model was trained
// against; do not swap for a WGS84 ellipsoid distance.
const earthRadiusKM = 6371.0

// kmPerLatDegree is the approximate length of one degree of latitude.
const kmPerLatDegree = 111.32

// HaversineKM returns the great-circle distance in kilometers between two
// latitude/longitude pairs.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// BoundingBox returns an axis-aligned box that over-approximates the circle
// of the given radius around a point. Longitude degrees shrink with
// cos(latitude); at the poles the cosine hits zero and the longitude range
// collapses to zero rather than dividing by it.
func BoundingBox(lat, lon, radiusKM float64) orb.Bound {
	latRange := radiusKM / kmPerLatDegree

	cosLat := math.Cos(lat * math.Pi / 180)
	var lonRange float64
	if math.Abs(cosLat) > 1e-10 {
		lonRange = radiusKM / (kmPerLatDegree * cosLat)
	}

	return orb.Bound{
		Min: orb.Point{lon - lonRange, lat - latRange},
		Max: orb.Point{lon + lonRange, lat + latRange},
	}
}
