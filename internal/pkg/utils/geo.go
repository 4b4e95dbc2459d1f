package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance returns the distance between two points in kilometers.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates checks that a lat/lon pair is within WGS84 bounds.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateBbox checks a left,bottom,right,top bounding box.
func ValidateBbox(left, bot, right, top float64) bool {
	return ValidateCoordinates(bot, left) && ValidateCoordinates(top, right) &&
		left < right && bot < top
}

// PointInFrance is a coarse coverage test for the directory source:
// metropolitan France approximated by its bounding box.
func PointInFrance(lat, lon float64) bool {
	return lat >= 41.2 && lat <= 51.3 && lon >= -5.5 && lon <= 9.8
}

// BboxInFrance reports whether a whole bbox fits in the directory coverage.
func BboxInFrance(left, bot, right, top float64) bool {
	return PointInFrance(bot, left) && PointInFrance(top, right)
}
