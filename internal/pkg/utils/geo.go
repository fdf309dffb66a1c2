package utils

import "math"

const earthRadiusMeters = 6371000

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// CalculateHaversineDistance returns the great-circle distance between two points in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	// Rounding can push a marginally above 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NearestDistance returns the distance in meters from p to the closest of sites and that site's index.
// It returns (+Inf, -1) when sites is empty.
func NearestDistance(p Coordinate, sites []Coordinate) (float64, int) {
	nearest := math.Inf(1)
	idx := -1
	for i, s := range sites {
		d := CalculateHaversineDistance(p.Latitude, p.Longitude, s.Latitude, s.Longitude)
		if d < nearest {
			nearest = d
			idx = i
		}
	}
	return nearest, idx
}
