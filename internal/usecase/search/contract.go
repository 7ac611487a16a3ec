package search

import (
	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	"github.com/stadtlab/datenkarte/internal/domain/feature"
)

// DatasetReader resolves dataset contents and metadata.
type DatasetReader interface {
	GetFeatures(id string) ([]feature.Feature, error)
	Metadata(id string) (domdataset.Metadata, error)
}
