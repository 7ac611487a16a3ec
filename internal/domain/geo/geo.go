// Package geo provides coordinate math shared by search and presentation:
// great-circle distance, the fixed UTM zone 32N transform used by Munich
// open-data files, and point normalization.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// Origin is the reference point for distance annotation (map center or
// user location), in geographic degrees.
type Origin struct {
	Lat float64
	Lon float64
}

// Valid reports whether the origin holds finite, in-range coordinates.
func (o Origin) Valid() bool {
	if math.IsNaN(o.Lat) || math.IsInf(o.Lat, 0) || math.IsNaN(o.Lon) || math.IsInf(o.Lon, 0) {
		return false
	}
	return ValidateCoordinates(o.Lat, o.Lon)
}

// Haversine returns the great-circle distance in kilometers between two
// points specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
