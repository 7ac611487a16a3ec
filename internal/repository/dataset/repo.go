// Package dataset holds the in-memory corpus of loaded datasets. The repo
// is built once at startup and read-only afterwards, so concurrent queries
// need no locking.
package dataset

import (
	"fmt"

	"github.com/stadtlab/datenkarte/internal/domain"
	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	"github.com/stadtlab/datenkarte/internal/domain/feature"
)

// Stats summarizes the loaded corpus.
type Stats struct {
	TotalDatasets int
	TotalFeatures int
}

// Repo answers dataset lookups against the immutable in-memory corpus.
type Repo struct {
	byID  map[string]domdataset.Dataset
	order []string
}

// New builds a repo from loaded datasets, preserving registration order
// for deterministic listings.
func New(datasets []domdataset.Dataset) (*Repo, error) {
	r := &Repo{byID: make(map[string]domdataset.Dataset, len(datasets))}
	for _, d := range datasets {
		if _, dup := r.byID[d.ID()]; dup {
			return nil, fmt.Errorf("duplicate dataset id %q", d.ID())
		}
		r.byID[d.ID()] = d
		r.order = append(r.order, d.ID())
	}
	return r, nil
}

// GetFeatures returns the ordered features of a dataset.
func (r *Repo) GetFeatures(id string) ([]feature.Feature, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("dataset %q: %w", id, domain.ErrDatasetNotFound)
	}
	return d.Features(), nil
}

// Metadata returns the display metadata of a dataset.
func (r *Repo) Metadata(id string) (domdataset.Metadata, error) {
	d, ok := r.byID[id]
	if !ok {
		return domdataset.Metadata{}, fmt.Errorf("dataset %q: %w", id, domain.ErrDatasetNotFound)
	}
	return d.Metadata(), nil
}

// List returns listing info for every dataset in registration order.
func (r *Repo) List() []domdataset.Info {
	infos := make([]domdataset.Info, 0, len(r.order))
	for _, id := range r.order {
		d := r.byID[id]
		infos = append(infos, d.Info())
	}
	return infos
}

// Stats returns corpus totals.
func (r *Repo) Stats() Stats {
	s := Stats{TotalDatasets: len(r.byID)}
	for _, d := range r.byID {
		s.TotalFeatures += len(d.Features())
	}
	return s
}
