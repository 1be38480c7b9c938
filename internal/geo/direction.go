package geo

import (
	"math"
)

// Bearing calculates the initial bearing in degrees from one point to another
func Bearing(from, to Coordinate) float64 {
	phi1 := toRadians(from.Lat)
	phi2 := toRadians(to.Lat)
	deltaLon := toRadians(to.Lon - from.Lon)

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	theta := math.Atan2(y, x)
	return math.Mod(theta*180/math.Pi+360, 360)
}

// BearingToCompass converts a bearing (0-360°) to 8-point compass direction
func BearingToCompass(bearing float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	index := int((bearing+22.5)/45.0) % 8
	return directions[index]
}

// CompassDirection returns the compass direction from one point to another,
// or an empty string when the points coincide.
func CompassDirection(from, to Coordinate) string {
	if from == to {
		return ""
	}
	return BearingToCompass(Bearing(from, to))
}
