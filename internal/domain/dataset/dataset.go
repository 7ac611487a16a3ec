// Package dataset models named, immutable collections of features.
package dataset

import (
	"fmt"

	"github.com/stadtlab/datenkarte/internal/domain/feature"
)

// Metadata is the display metadata of a dataset.
type Metadata struct {
	Title    string
	Category string
}

// Info describes a dataset for listings and picker suggestions.
type Info struct {
	ID           string
	Title        string
	Category     string
	FeatureCount int
}

// Dataset is a named collection of features sharing a coordinate
// convention and schema family. Feature order is source-file order and is
// preserved for deterministic results. Immutable after load.
type Dataset struct {
	id       string
	meta     Metadata
	features []feature.Feature
}

// New validates and creates a Dataset.
func New(id string, meta Metadata, features []feature.Feature) (Dataset, error) {
	if id == "" {
		return Dataset{}, fmt.Errorf("dataset id is required")
	}
	if meta.Title == "" {
		return Dataset{}, fmt.Errorf("dataset %s: title is required", id)
	}
	return Dataset{id: id, meta: meta, features: features}, nil
}

// ID returns the stable dataset identifier.
func (d *Dataset) ID() string { return d.id }

// Metadata returns the display metadata.
func (d *Dataset) Metadata() Metadata { return d.meta }

// Features returns the ordered feature sequence. Callers must not mutate it.
func (d *Dataset) Features() []feature.Feature { return d.features }

// Info returns the listing view of the dataset.
func (d *Dataset) Info() Info {
	return Info{
		ID:           d.id,
		Title:        d.meta.Title,
		Category:     d.meta.Category,
		FeatureCount: len(d.features),
	}
}
