package services

import (
	"fmt"
	"math"
	"time"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0088

// Haversine returns the great-circle distance in kilometres between two
// latitude/longitude points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := math.Pi / 180
	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just past 1 for near-antipodal points.
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(math.Min(1, a)))
}

// WeekOfYear returns the Sunday-based week number of t as two digits.
// Days before the first Sunday of the year fall in week "00".
func WeekOfYear(t time.Time) string {
	week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
	return fmt.Sprintf("%02d", week)
}
