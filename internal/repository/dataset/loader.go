package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	"github.com/stadtlab/datenkarte/internal/domain/feature"
)

// Source maps a dataset id to its GeoJSON file and display metadata.
type Source struct {
	ID       string
	Title    string
	Category string
	File     string
}

// Load reads every source file under dataDir and builds the datasets.
// A file that cannot be read or parsed yields an empty dataset rather than
// failing startup: the rest of the corpus stays searchable and the gap is
// visible in feature counts.
func Load(dataDir string, sources []Source, logger *zap.Logger) ([]domdataset.Dataset, error) {
	datasets := make([]domdataset.Dataset, 0, len(sources))

	for _, src := range sources {
		feats, err := loadFile(filepath.Join(dataDir, src.File))
		if err != nil {
			logger.Warn("dataset file unreadable, loading empty",
				zap.String("dataset", src.ID),
				zap.String("file", src.File),
				zap.Error(err),
			)
			feats = nil
		}

		d, err := domdataset.New(src.ID, domdataset.Metadata{Title: src.Title, Category: src.Category}, feats)
		if err != nil {
			return nil, fmt.Errorf("build dataset %s: %w", src.ID, err)
		}

		logger.Debug("dataset loaded",
			zap.String("dataset", src.ID),
			zap.Int("features", len(feats)),
		)
		datasets = append(datasets, d)
	}

	return datasets, nil
}

// loadFile parses one GeoJSON FeatureCollection, keeping source order.
func loadFile(path string) ([]feature.Feature, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var fc geojson.FeatureCollection
	if err := fc.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	feats := make([]feature.Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		feats = append(feats, feature.Reconstruct(f.Properties, f.Geometry))
	}

	return feats, nil
}
