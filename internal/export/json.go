package export

import (
	"encoding/json"
	"io"

	"github.com/icrf-tools/icrlab/internal/plasma"
)

type RunData struct {
	ID          string         `json:"id"`
	Ion         string         `json:"ion"`
	CoilCurrent float64        `json:"coil_current"`
	Frequency   float64        `json:"frequency"`
	MaxHarmonic int            `json:"max_harmonic"`
	Samples     int            `json:"samples"`
	Radii       []float64      `json:"radii"`
	Field       []float64      `json:"field"`
	Layers      []plasma.Layer `json:"layers"`
}

// WriteJSON streams a run to w with indentation.
func WriteJSON(w io.Writer, data RunData) error {
	data.Samples = len(data.Radii)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
