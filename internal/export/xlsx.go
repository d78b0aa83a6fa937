// Package export writes runs and search results to xlsx and JSON.
package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/icrf-tools/icrlab/internal/plasma"
	"github.com/icrf-tools/icrlab/internal/scan"
)

// ProfileXLSX writes one run to an xlsx workbook: a Summary sheet, the
// sampled field profile, and the resonance layers inside the window.
func ProfileXLSX(filename, runID string, radii, field []float64, layers []plasma.Layer, current, frequency float64, ion string) error {
	f := excelize.NewFile()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	f.SetCellValue(summary, "A1", "Run")
	f.SetCellValue(summary, "B1", runID)
	f.SetCellValue(summary, "A2", "Ion")
	f.SetCellValue(summary, "B2", ion)
	f.SetCellValue(summary, "A3", "Coil current [A]")
	f.SetCellValue(summary, "B3", current)
	f.SetCellValue(summary, "A4", "Frequency [Hz]")
	f.SetCellValue(summary, "B4", frequency)
	f.SetCellValue(summary, "A5", "Samples")
	f.SetCellValue(summary, "B5", len(radii))
	f.SetCellValue(summary, "A6", "Layers in window")
	f.SetCellValue(summary, "B6", len(layers))

	profile := "Profile"
	f.NewSheet(profile)
	f.SetCellValue(profile, "A1", "R [m]")
	f.SetCellValue(profile, "B1", "B [T]")
	for i := range radii {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(profile, cell, radii[i])
		cell, _ = excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(profile, cell, field[i])
	}

	sheet := "Layers"
	f.NewSheet(sheet)
	f.SetCellValue(sheet, "A1", "Harmonic")
	f.SetCellValue(sheet, "B1", "R_c [m]")
	for i, l := range layers {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, l.Harmonic)
		cell, _ = excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheet, cell, l.Radius)
	}

	return f.SaveAs(filename)
}

// SearchXLSX writes a parameter search to an xlsx workbook: summary
// counters plus one row per captured hit, in base SI units.
func SearchXLSX(filename string, cfg scan.SearchConfig, res *scan.SearchResult) error {
	f := excelize.NewFile()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	f.SetCellValue(summary, "A1", "Ion")
	f.SetCellValue(summary, "B1", cfg.Ion.String())
	f.SetCellValue(summary, "A2", "Harmonic")
	f.SetCellValue(summary, "B2", cfg.Harmonic)
	f.SetCellValue(summary, "A3", "Target R min [m]")
	f.SetCellValue(summary, "B3", cfg.Target.Min)
	f.SetCellValue(summary, "A4", "Target R max [m]")
	f.SetCellValue(summary, "B4", cfg.Target.Max)
	f.SetCellValue(summary, "A5", "Tried")
	f.SetCellValue(summary, "B5", res.Tried)
	f.SetCellValue(summary, "A6", "Accepted")
	f.SetCellValue(summary, "B6", res.Accepted)
	f.SetCellValue(summary, "A7", "Hit rate")
	f.SetCellValue(summary, "B7", res.HitRate())
	f.SetCellValue(summary, "A8", "Seed")
	f.SetCellValue(summary, "B8", cfg.Seed)

	hits := "Hits"
	f.NewSheet(hits)
	f.SetCellValue(hits, "A1", "No")
	f.SetCellValue(hits, "B1", "I [A]")
	f.SetCellValue(hits, "C1", "f [Hz]")
	f.SetCellValue(hits, "D1", "R_c [m]")
	for i, h := range res.Hits {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(hits, cell, i+1)
		cell, _ = excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(hits, cell, h.Current)
		cell, _ = excelize.CoordinatesToCellName(3, row)
		f.SetCellValue(hits, cell, h.Frequency)
		cell, _ = excelize.CoordinatesToCellName(4, row)
		f.SetCellValue(hits, cell, h.Radius)
	}

	return f.SaveAs(filename)
}
