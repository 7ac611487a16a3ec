// Package search implements cross-dataset substring search with optional
// distance annotation.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stadtlab/datenkarte/internal/domain"
	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	"github.com/stadtlab/datenkarte/internal/domain/feature"
	"github.com/stadtlab/datenkarte/internal/domain/geo"
)

// distanceDecimals is the rounding policy for DistanceKm annotations.
const distanceDecimals = 2

// Query is one search request. Text may be empty ("match everything in the
// selected datasets"). Origin is optional; without it no distances are
// computed.
type Query struct {
	Text       string
	DatasetIDs []string
	Origin     *geo.Origin
}

// Result is the merged engine output: matches grouped by dataset in
// request order, source order within a dataset, plus metadata for every
// dataset that contributed at least one match.
type Result struct {
	Features []feature.Feature
	Metadata map[string]domdataset.Metadata
}

// Service is the search engine. It holds no state between calls beyond the
// read-only dataset reader, so concurrent searches need no coordination.
type Service struct {
	datasets DatasetReader
}

// New creates a search service.
func New(datasets DatasetReader) *Service {
	return &Service{datasets: datasets}
}

// Search matches the query text against every feature of the requested
// datasets. The match test is a case-insensitive substring check over the
// concatenation of all stringified property values — deliberately simple,
// and it covers fields no UI ever shows.
//
// Unknown dataset ids are skipped, not errors: a stale workspace may
// reference a dataset that no longer exists without breaking the search.
// An out-of-range origin is the caller's mistake and rejects the query.
func (s *Service) Search(_ context.Context, q Query) (Result, error) {
	if q.Origin != nil && !q.Origin.Valid() {
		return Result{}, fmt.Errorf("%w: origin coordinates out of range", domain.ErrInvalidInput)
	}

	res := Result{
		Features: []feature.Feature{},
		Metadata: make(map[string]domdataset.Metadata),
	}
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	for _, id := range uniqueInOrder(q.DatasetIDs) {
		feats, err := s.datasets.GetFeatures(id)
		if err != nil {
			if errors.Is(err, domain.ErrDatasetNotFound) {
				continue
			}
			return Result{}, fmt.Errorf("get features %s: %w", id, err)
		}

		matched := false
		for _, f := range feats {
			if needle != "" && !strings.Contains(f.SearchText(), needle) {
				continue
			}
			res.Features = append(res.Features, s.annotate(f.Tagged(id), q.Origin))
			matched = true
		}

		if matched {
			meta, err := s.datasets.Metadata(id)
			if err != nil {
				return Result{}, fmt.Errorf("get metadata %s: %w", id, err)
			}
			res.Metadata[id] = meta
		}
	}

	return res, nil
}

// annotate attaches DistanceKm when an origin is given and the feature has
// a resolvable Point geometry. Polygons never get a distance, and a point
// that fails normalization keeps "distance unknown" rather than a fake
// city-center distance.
func (s *Service) annotate(f feature.Feature, origin *geo.Origin) feature.Feature {
	if origin == nil {
		return f
	}
	x, y, ok := f.PointCoords()
	if !ok {
		return f
	}
	lat, lon, err := geo.NormalizePoint(x, y)
	if err != nil {
		return f
	}
	km := geo.Haversine(origin.Lat, origin.Lon, lat, lon)
	return f.WithDistanceKm(roundKm(km))
}

// roundKm rounds to the fixed distance precision.
func roundKm(km float64) float64 {
	shift := math.Pow10(distanceDecimals)
	return math.Round(km*shift) / shift
}

// uniqueInOrder drops repeated ids, keeping first occurrence order so
// result grouping stays caller-controlled.
func uniqueInOrder(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
