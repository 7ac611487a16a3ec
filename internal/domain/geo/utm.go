package geo

import (
	"fmt"
	"math"
)

// UTM zone 32N on the GRS80 ellipsoid (ETRS89 datum, EPSG:25832) — the
// projected system Munich open-data files are published in. The transform
// is fixed, not configurable per call.
const (
	grs80A    = 6378137.0         // semi-major axis
	grs80F    = 1 / 298.257222101 // flattening
	utmK0     = 0.9996            // central meridian scale
	utmFalseE = 500000.0          // false easting
	utmFalseN = 0.0               // false northing (northern hemisphere)
	utmLon0   = 9.0               // zone 32 central meridian, degrees
)

var (
	utmE2  = grs80F * (2 - grs80F) // first eccentricity squared
	utmEP2 = utmE2 / (1 - utmE2)   // second eccentricity squared
	utmE1  = (1 - math.Sqrt(1-utmE2)) / (1 + math.Sqrt(1-utmE2))
)

// ToUTM projects geographic degrees to zone 32N easting/northing in meters.
func ToUTM(lat, lon float64) (easting, northing float64) {
	phi := lat * math.Pi / 180
	dLam := (lon - utmLon0) * math.Pi / 180

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := sinPhi / cosPhi

	n := grs80A / math.Sqrt(1-utmE2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := utmEP2 * cosPhi * cosPhi
	a := cosPhi * dLam

	m := meridianArc(phi)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	easting = utmFalseE + utmK0*n*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*utmEP2)*a5/120)

	northing = utmFalseN + utmK0*(m+n*tanPhi*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*utmEP2)*a6/720))

	return easting, northing
}

// FromUTM converts zone 32N easting/northing in meters back to geographic
// degrees. Returns an error for non-finite input or results outside the
// valid geographic range.
func FromUTM(easting, northing float64) (lat, lon float64, err error) {
	if math.IsNaN(easting) || math.IsInf(easting, 0) || math.IsNaN(northing) || math.IsInf(northing, 0) {
		return 0, 0, fmt.Errorf("non-finite utm coordinates (%v, %v)", easting, northing)
	}

	m := (northing - utmFalseN) / utmK0
	mu := m / (grs80A * (1 - utmE2/4 - 3*utmE2*utmE2/64 - 5*utmE2*utmE2*utmE2/256))

	e1 := utmE1
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := utmEP2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	sin2 := utmE2 * sinPhi1 * sinPhi1
	n1 := grs80A / math.Sqrt(1-sin2)
	r1 := grs80A * (1 - utmE2) / math.Pow(1-sin2, 1.5)
	d := (easting - utmFalseE) / (n1 * utmK0)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	phi := phi1 - (n1 * tanPhi1 / r1) * (d2/2 -
		(5+3*t1+10*c1-4*c1*c1-9*utmEP2)*d4/24 +
		(61+90*t1+298*c1+45*t1*t1-252*utmEP2-3*c1*c1)*d6/720)

	lam := d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*utmEP2+24*t1*t1)*d5/120

	lat = phi * 180 / math.Pi
	lon = utmLon0 + lam/cosPhi1*180/math.Pi

	if !ValidateCoordinates(lat, lon) {
		return 0, 0, fmt.Errorf("utm conversion out of range: (%f, %f)", lat, lon)
	}

	return lat, lon, nil
}

// meridianArc returns the meridional arc length from the equator to phi.
func meridianArc(phi float64) float64 {
	e2 := utmE2
	e4 := e2 * e2
	e6 := e4 * e2
	return grs80A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
