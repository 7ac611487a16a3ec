package catalog

import (
	"context"

	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	datasetrepo "github.com/stadtlab/datenkarte/internal/repository/dataset"
)

// DatasetLister reads the loaded dataset corpus.
type DatasetLister interface {
	List() []domdataset.Info
	Stats() datasetrepo.Stats
}

// WorkspaceCounter counts stored workspaces.
type WorkspaceCounter interface {
	Count(ctx context.Context) (int, error)
}
