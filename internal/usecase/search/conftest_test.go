package search

import (
	"fmt"

	"github.com/stadtlab/datenkarte/internal/domain"
	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	"github.com/stadtlab/datenkarte/internal/domain/feature"
)

// mockDatasets implements DatasetReader over fixture data.
type mockDatasets struct {
	features map[string][]feature.Feature
	metadata map[string]domdataset.Metadata
}

func newMockDatasets() *mockDatasets {
	return &mockDatasets{
		features: make(map[string][]feature.Feature),
		metadata: make(map[string]domdataset.Metadata),
	}
}

func (m *mockDatasets) add(id, title, category string, feats ...feature.Feature) {
	m.features[id] = append(m.features[id], feats...)
	m.metadata[id] = domdataset.Metadata{Title: title, Category: category}
}

func (m *mockDatasets) GetFeatures(id string) ([]feature.Feature, error) {
	feats, ok := m.features[id]
	if !ok {
		return nil, fmt.Errorf("dataset %q: %w", id, domain.ErrDatasetNotFound)
	}
	return feats, nil
}

func (m *mockDatasets) Metadata(id string) (domdataset.Metadata, error) {
	meta, ok := m.metadata[id]
	if !ok {
		return domdataset.Metadata{}, fmt.Errorf("dataset %q: %w", id, domain.ErrDatasetNotFound)
	}
	return meta, nil
}
