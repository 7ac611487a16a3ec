package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const marketsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Viktualienmarkt", "stands": 110, "note": null},
      "geometry": {"type": "Point", "coordinates": [11.576124, 48.135124]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Elisabethmarkt"},
      "geometry": null
    },
    {
      "type": "Feature",
      "properties": {"name": "Umweltzone"},
      "geometry": {"type": "Polygon", "coordinates": [[[11.5, 48.1], [11.6, 48.1], [11.6, 48.2], [11.5, 48.1]]]}
    }
  ]
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maerkte.json", marketsGeoJSON)

	datasets, err := Load(dir, []Source{
		{ID: "markets", Title: "Märkte", Category: "shopping", File: "maerkte.json"},
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if len(datasets) != 1 {
		t.Fatalf("want 1 dataset, got %d", len(datasets))
	}
	feats := datasets[0].Features()
	if len(feats) != 3 {
		t.Fatalf("want 3 features, got %d", len(feats))
	}

	if feats[0].Properties()["name"] != "Viktualienmarkt" {
		t.Fatalf("source order broken: %v", feats[0].Properties())
	}
	if _, _, ok := feats[0].PointCoords(); !ok {
		t.Fatal("first feature must have point coords")
	}
	if feats[1].Geometry() != nil {
		t.Fatal("null geometry must stay nil")
	}
	if _, _, ok := feats[2].PointCoords(); ok {
		t.Fatal("polygon must not expose point coords")
	}
}

func TestLoad_MissingFileYieldsEmptyDataset(t *testing.T) {
	datasets, err := Load(t.TempDir(), []Source{
		{ID: "markets", Title: "Märkte", Category: "shopping", File: "gone.json"},
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if len(datasets) != 1 {
		t.Fatalf("want 1 dataset, got %d", len(datasets))
	}
	if n := len(datasets[0].Features()); n != 0 {
		t.Fatalf("want empty dataset, got %d features", n)
	}
}

func TestLoad_MalformedFileYieldsEmptyDataset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"type": "FeatureCollection", "features": [{`)

	datasets, err := Load(dir, []Source{
		{ID: "broken", Title: "Broken", File: "broken.json"},
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if n := len(datasets[0].Features()); n != 0 {
		t.Fatalf("want empty dataset, got %d features", n)
	}
}

func TestLoad_MissingTitleFails(t *testing.T) {
	if _, err := Load(t.TempDir(), []Source{{ID: "x", File: "x.json"}}, zap.NewNop()); err == nil {
		t.Fatal("want error for missing title")
	}
}
