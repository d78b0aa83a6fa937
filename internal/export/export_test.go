package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/icrf-tools/icrlab/internal/plasma"
	"github.com/icrf-tools/icrlab/internal/scan"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := RunData{
		ID:          "H_deadbeef",
		Ion:         "H",
		CoilCurrent: 1250,
		Frequency:   55e6,
		MaxHarmonic: 3,
		Radii:       []float64{1, 2, 3},
		Field:       []float64{9.125, 4.5625, 3.0417},
		Layers:      []plasma.Layer{{Harmonic: 1, Radius: 2.529}},
	}

	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got RunData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if got.Samples != 3 {
		t.Errorf("expected samples 3, got %d", got.Samples)
	}
	if got.ID != "H_deadbeef" || len(got.Layers) != 1 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestProfileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")

	err := ProfileXLSX(path, "H_cafe0123",
		[]float64{1, 2}, []float64{9.125, 4.5625},
		[]plasma.Layer{{Harmonic: 1, Radius: 2.529}},
		1250, 55e6, "H")
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("xlsx not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty xlsx file")
	}
}

func TestSearchXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.xlsx")

	cfg := scan.SearchConfig{
		Ion:      plasma.Ion{Name: "D", Z: 1, A: 2},
		Harmonic: 1,
		Target:   scan.Window{Min: 2, Max: 3},
		Seed:     42,
	}
	res := &scan.SearchResult{
		Hits:     []scan.Hit{{Current: 1250, Frequency: 55e6, Radius: 2.53}},
		Tried:    100,
		Accepted: 1,
	}

	if err := SearchXLSX(path, cfg, res); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("xlsx not written: %v", err)
	}
}
