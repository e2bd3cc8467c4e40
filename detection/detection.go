// Package detection flags likely road hazards from gyroscope readings.
package detection

import "math"

// Threshold is the fixed trigger level for both the vertical axis and the
// overall magnitude. Not calibrated against real-world data.
const Threshold = 1.5

// DetectPothole reports whether a 3-axis gyroscope sample looks like the
// vehicle hit a pothole: significant vertical movement and significant
// overall movement at the same time.
func DetectPothole(x, y, z float64) bool {
	magnitude := math.Sqrt(x*x + y*y + z*z)
	return math.Abs(z) > Threshold && magnitude > Threshold
}
