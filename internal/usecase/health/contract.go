package health

import (
	"context"

	datasetrepo "github.com/stadtlab/datenkarte/internal/repository/dataset"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CorpusReader checks the loaded dataset corpus.
type CorpusReader interface {
	Stats() datasetrepo.Stats
}
