// Package feature holds the record type shared by every dataset.
package feature

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Feature is one geo-tagged record from a dataset (immutable value object).
// Properties are schema-less: keys and presence vary per dataset, values are
// scalars (string, number, or nil). DatasetID and DistanceKm are attached to
// copies at query time, never to the loaded record.
type Feature struct {
	properties map[string]any
	geometry   geom.T
	datasetID  string
	distanceKm *float64
}

// Reconstruct creates a Feature from loaded data (no validation).
// geometry may be nil for records without a location.
func Reconstruct(properties map[string]any, geometry geom.T) Feature {
	return Feature{properties: properties, geometry: geometry}
}

// Properties returns the raw property mapping. Callers must not mutate it.
func (f *Feature) Properties() map[string]any { return f.properties }

// Geometry returns the feature geometry, or nil.
func (f *Feature) Geometry() geom.T { return f.geometry }

// DatasetID returns the owning dataset id (empty until tagged).
func (f *Feature) DatasetID() string { return f.datasetID }

// DistanceKm returns the distance annotation and whether one is present.
// Absence is meaningful: distance unknown, not zero.
func (f *Feature) DistanceKm() (float64, bool) {
	if f.distanceKm == nil {
		return 0, false
	}
	return *f.distanceKm, true
}

// Tagged returns a copy owned by the given dataset.
func (f Feature) Tagged(datasetID string) Feature {
	f.datasetID = datasetID
	return f
}

// WithDistanceKm returns a copy annotated with a distance in kilometers.
func (f Feature) WithDistanceKm(km float64) Feature {
	f.distanceKm = &km
	return f
}

// PointCoords returns the raw coordinate pair when the geometry is a Point.
// The pair is returned as stored in the source file, without normalization.
func (f *Feature) PointCoords() (x, y float64, ok bool) {
	p, isPoint := f.geometry.(*geom.Point)
	if !isPoint || p.Stride() < 2 {
		return 0, 0, false
	}
	c := p.Coords()
	return c[0], c[1], true
}

// SearchText returns the lowercase concatenation of all property values,
// joined by spaces in key order. Nil and empty-string values contribute
// nothing. Every field is searchable, including ones a UI never shows.
func (f *Feature) SearchText() string {
	if len(f.properties) == 0 {
		return ""
	}

	keys := make([]string, 0, len(f.properties))
	for k := range f.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := stringify(f.properties[k]); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// stringify coerces a scalar property value to text. Nil maps to "" so it
// is skipped, not rendered as "null".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
