package geo

import "fmt"

// SRID is the spatial reference used for every stored point. The system never
// reprojects between reference systems.
const SRID = 4326

// KmPerDegree converts a kilometer radius to an angular radius in degrees.
// Flat-earth approximation; acceptable for the small radii this API serves.
const KmPerDegree = 111.0

// metersPerDegreeArc is the length of one degree of a great-circle arc on the
// mean-radius sphere, 2*pi*6371000/360.
const metersPerDegreeArc = 111194.92664455873

// PointWKT renders a coordinate pair as MySQL WKT. SRID 4326 is a geographic
// SRS, so the axis order is latitude first.
func PointWKT(lat, lng float64) string {
	return fmt.Sprintf("POINT(%g %g)", lat, lng)
}

// RadiusKmToMeters converts a kilometer search radius to the great-circle
// distance in meters that matches an angular radius of radiusKm/111 degrees.
func RadiusKmToMeters(radiusKm float64) float64 {
	return radiusKm / KmPerDegree * metersPerDegreeArc
}
