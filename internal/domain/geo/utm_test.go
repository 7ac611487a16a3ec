package geo

import (
	"math"
	"testing"
)

func TestToUTM_MunichBallpark(t *testing.T) {
	// Marienplatz is roughly 191km east of the 9°E central meridian and
	// 5,330km north of the equator in zone 32N.
	e, n := ToUTM(48.137154, 11.576124)
	if e < 685_000 || e > 698_000 {
		t.Fatalf("easting out of ballpark: %f", e)
	}
	if n < 5_325_000 || n > 5_345_000 {
		t.Fatalf("northing out of ballpark: %f", n)
	}
}

func TestUTM_Roundtrip(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"marienplatz", 48.137154, 11.576124},
		{"olympiapark", 48.1755, 11.5518},
		{"city edge", 48.2482, 11.7229},
		{"central meridian", 48.0, 9.0},
		{"zone west edge", 47.5, 6.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, n := ToUTM(tt.lat, tt.lon)
			lat, lon, err := FromUTM(e, n)
			if err != nil {
				t.Fatalf("FromUTM: %v", err)
			}
			if !almost(lat, tt.lat, 1e-6) || !almost(lon, tt.lon, 1e-6) {
				t.Fatalf("roundtrip drifted: (%f, %f) -> (%f, %f)", tt.lat, tt.lon, lat, lon)
			}
		})
	}
}

func TestFromUTM_RoundtripInverse(t *testing.T) {
	// Inverse-first round-trip: projected values from the published files
	// survive FromUTM -> ToUTM within a centimeter.
	e0, n0 := 691_500.0, 5_334_000.0
	lat, lon, err := FromUTM(e0, n0)
	if err != nil {
		t.Fatal(err)
	}
	e1, n1 := ToUTM(lat, lon)
	if !almost(e0, e1, 0.01) || !almost(n0, n1, 0.01) {
		t.Fatalf("roundtrip drifted: (%f, %f) -> (%f, %f)", e0, n0, e1, n1)
	}
}

func TestFromUTM_NonFinite(t *testing.T) {
	if _, _, err := FromUTM(math.NaN(), 5_334_000); err == nil {
		t.Fatal("want error for NaN easting")
	}
	if _, _, err := FromUTM(691_500, math.Inf(1)); err == nil {
		t.Fatal("want error for infinite northing")
	}
}

func TestFromUTM_OutOfRange(t *testing.T) {
	// Northings far beyond the pole cannot resolve to a valid latitude.
	if _, _, err := FromUTM(500_000, 4e9); err == nil {
		t.Fatal("want error for absurd northing")
	}
}
