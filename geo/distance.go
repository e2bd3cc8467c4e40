package geo

import "github.com/golang/geo/s2"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two WGS84 coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusKm
}
