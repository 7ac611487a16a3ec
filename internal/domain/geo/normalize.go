package geo

import (
	"fmt"
	"math"
)

// Munich city center (Marienplatz), the documented display fallback when a
// point cannot be normalized.
const (
	MunichCenterLat = 48.137154
	MunichCenterLon = 11.576124
)

// NormalizePoint resolves a raw coordinate pair from a source file to
// geographic (lat, lon) degrees.
//
// Pairs with a component magnitude above 180 are treated as UTM zone 32N
// and converted. Otherwise the pair is already geographic; when the first
// component's magnitude is smaller than the second's, the pair is assumed
// lon-first and swapped. The swap is a guess, not a system identifier —
// it misfires for points near the |lat| == |lon| diagonal, and is kept
// for compatibility with the published datasets.
func NormalizePoint(x, y float64) (lat, lon float64, err error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, fmt.Errorf("non-finite coordinates (%v, %v)", x, y)
	}

	if math.Abs(x) > 180 || math.Abs(y) > 180 {
		return FromUTM(x, y)
	}

	if math.Abs(x) < math.Abs(y) {
		x, y = y, x
	}
	if !ValidateCoordinates(x, y) {
		return 0, 0, fmt.Errorf("coordinates out of range: (%f, %f)", x, y)
	}
	return x, y, nil
}

// NormalizePointOrCenter is the display-layer variant: on conversion
// failure it falls back to the Munich city center instead of erroring.
// Distance math must not use it — an unresolvable point means "distance
// unknown", not "at Marienplatz".
func NormalizePointOrCenter(x, y float64) (lat, lon float64) {
	lat, lon, err := NormalizePoint(x, y)
	if err != nil {
		return MunichCenterLat, MunichCenterLon
	}
	return lat, lon
}
