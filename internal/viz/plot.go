package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/icrf-tools/icrlab/internal/scan"
)

// ProfileGraph renders the sampled field profile as an ascii plot with
// a marker row for the resonance layers underneath.
func ProfileGraph(prof *scan.Profile, width, height int) string {
	var sb strings.Builder

	graph := asciigraph.Plot(prof.Field,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("|B(R)| [T], R = %.2f .. %.2f m", prof.Params.RMin, prof.Params.RMax)),
	)
	sb.WriteString(graph)
	sb.WriteString("\n")
	sb.WriteString(layerRow(prof, width))
	return sb.String()
}

// layerRow marks each in-window layer's radial position with its
// harmonic index on a single line aligned with the plot width.
func layerRow(prof *scan.Profile, width int) string {
	row := []rune(strings.Repeat(" ", width))
	span := prof.Params.RMax - prof.Params.RMin
	for _, l := range prof.Layers {
		pos := int(float64(width-1) * (l.Radius - prof.Params.RMin) / span)
		if pos >= 0 && pos < width {
			row[pos] = rune('0' + l.Harmonic%10)
		}
	}
	return string(row) + "  (resonance layers by harmonic)"
}

// LayerTable formats the layer list for plain terminal output.
func LayerTable(prof *scan.Profile) string {
	if len(prof.Layers) == 0 {
		return "no resonance layers in window\n"
	}
	var sb strings.Builder
	for _, l := range prof.Layers {
		fmt.Fprintf(&sb, "  n=%d  R_c = %.6f m\n", l.Harmonic, l.Radius)
	}
	return sb.String()
}
