// Package catalog serves dataset listings, picker suggestions, and corpus
// statistics.
package catalog

import (
	"context"
	"fmt"
	"strings"

	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
)

// Stats summarizes the whole system for the stats endpoint.
type Stats struct {
	TotalDatasets   int
	TotalFeatures   int
	TotalWorkspaces int
}

// Service answers catalog queries. workspaces may be nil when no workspace
// store is configured; the count then stays zero.
type Service struct {
	datasets   DatasetLister
	workspaces WorkspaceCounter
}

// New creates a catalog service.
func New(datasets DatasetLister, workspaces WorkspaceCounter) *Service {
	return &Service{datasets: datasets, workspaces: workspaces}
}

// List returns every dataset with its feature count, in load order.
func (s *Service) List(_ context.Context) []domdataset.Info {
	return s.datasets.List()
}

// Suggest returns datasets whose title, category, or id contains the query
// as a case-insensitive substring. The service itself places no minimum on
// the query length; the transport enforces the UI convention.
func (s *Service) Suggest(_ context.Context, query string) []domdataset.Info {
	needle := strings.ToLower(strings.TrimSpace(query))

	matches := []domdataset.Info{}
	for _, info := range s.datasets.List() {
		if needle == "" ||
			strings.Contains(strings.ToLower(info.Title), needle) ||
			strings.Contains(strings.ToLower(info.Category), needle) ||
			strings.Contains(strings.ToLower(info.ID), needle) {
			matches = append(matches, info)
		}
	}
	return matches
}

// Stats returns corpus and workspace totals.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	ds := s.datasets.Stats()
	out := Stats{TotalDatasets: ds.TotalDatasets, TotalFeatures: ds.TotalFeatures}

	if s.workspaces != nil {
		n, err := s.workspaces.Count(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("count workspaces: %w", err)
		}
		out.TotalWorkspaces = n
	}

	return out, nil
}
