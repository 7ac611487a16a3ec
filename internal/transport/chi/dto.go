package chi

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom/encoding/geojson"

	domdataset "github.com/stadtlab/datenkarte/internal/domain/dataset"
	"github.com/stadtlab/datenkarte/internal/domain/feature"
	domws "github.com/stadtlab/datenkarte/internal/domain/workspace"
	searchuc "github.com/stadtlab/datenkarte/internal/usecase/search"
)

// featureJSON is the wire shape of a search result record. Geometry is
// emitted as raw GeoJSON or null; distanceKm is omitted entirely when
// unknown (absence is meaningful, zero is not a substitute).
type featureJSON struct {
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
	DatasetID  string          `json:"datasetId"`
	DistanceKm *float64        `json:"distanceKm,omitempty"`
}

// metadataJSON is the wire shape of dataset display metadata.
type metadataJSON struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// searchResponseJSON is the wire shape of a search response.
type searchResponseJSON struct {
	Query           string                  `json:"query"`
	Count           int                     `json:"count"`
	Results         []featureJSON           `json:"results"`
	DatasetMetadata map[string]metadataJSON `json:"dataset_metadata"`
}

// datasetInfoJSON is the wire shape of a dataset listing entry.
type datasetInfoJSON struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	FeatureCount int    `json:"featureCount"`
}

// workspaceJSON is the wire shape of a workspace.
type workspaceJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	DatasetIDs  []string `json:"datasetIds"`
}

func featureToJSON(f feature.Feature) (featureJSON, error) {
	out := featureJSON{
		Properties: f.Properties(),
		DatasetID:  f.DatasetID(),
	}
	if out.Properties == nil {
		out.Properties = map[string]any{}
	}

	if g := f.Geometry(); g != nil {
		raw, err := geojson.Marshal(g)
		if err != nil {
			return featureJSON{}, fmt.Errorf("marshal geometry: %w", err)
		}
		out.Geometry = raw
	}

	if km, ok := f.DistanceKm(); ok {
		out.DistanceKm = &km
	}

	return out, nil
}

func searchResultToJSON(query string, res searchuc.Result) (searchResponseJSON, error) {
	results := make([]featureJSON, len(res.Features))
	for i, f := range res.Features {
		fj, err := featureToJSON(f)
		if err != nil {
			return searchResponseJSON{}, err
		}
		results[i] = fj
	}

	meta := make(map[string]metadataJSON, len(res.Metadata))
	for id, m := range res.Metadata {
		meta[id] = metadataJSON{Title: m.Title, Category: m.Category}
	}

	return searchResponseJSON{
		Query:           query,
		Count:           len(results),
		Results:         results,
		DatasetMetadata: meta,
	}, nil
}

func infoToJSON(info domdataset.Info) datasetInfoJSON {
	return datasetInfoJSON{
		ID:           info.ID,
		Title:        info.Title,
		Category:     info.Category,
		FeatureCount: info.FeatureCount,
	}
}

func workspaceToJSON(ws domws.Workspace) workspaceJSON {
	ids := ws.DatasetIDs()
	if ids == nil {
		ids = []string{}
	}
	return workspaceJSON{
		ID:          ws.ID(),
		Name:        ws.Name(),
		Description: ws.Description(),
		DatasetIDs:  ids,
	}
}
