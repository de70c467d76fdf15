package utils

import "math"

// EarthRadiusMeters is the mean earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// DistanceInMeter returns the haversine distance between two WGS84 coordinates.
func DistanceInMeter(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	lat1Rad := lat1 * degToRad
	lat2Rad := lat2 * degToRad
	dLat := lat2Rad - lat1Rad
	dLon := (lon2 - lon1) * degToRad

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// DistanceInKM is DistanceInMeter in kilometers.
func DistanceInKM(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceInMeter(lat1, lon1, lat2, lon2) / 1000
}
