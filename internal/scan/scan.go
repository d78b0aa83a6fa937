// Package scan samples the toroidal field over a radial window and
// locates resonance layers, and searches operating parameters that
// place a layer inside a target window.
package scan

import (
	"fmt"

	"github.com/icrf-tools/icrlab/internal/plasma"
)

// Params fixes one radial profile scan.
type Params struct {
	Current     float64
	Frequency   float64
	Ion         plasma.Ion
	MaxHarmonic int
	RMin, RMax  float64
	Points      int
}

// Profile is a sampled field profile with the resonance layers that
// fall inside the window.
type Profile struct {
	Params Params
	Radii  []float64
	Field  []float64
	Layers []plasma.Layer
}

// RadialProfile samples |B(R)| at Points evenly spaced radii and keeps
// the harmonic layers 1..MaxHarmonic that land inside [RMin, RMax].
func RadialProfile(p Params) (*Profile, error) {
	if p.Points < 2 {
		return nil, fmt.Errorf("%w: need at least 2 scan points, got %d", plasma.ErrInvalidArgument, p.Points)
	}
	if p.RMin <= 0 || p.RMax <= p.RMin {
		return nil, fmt.Errorf("%w: radial window [%g, %g] is empty or crosses the axis", plasma.ErrInvalidArgument, p.RMin, p.RMax)
	}
	if p.MaxHarmonic < 1 {
		return nil, fmt.Errorf("%w: max harmonic must be >= 1, got %d", plasma.ErrInvalidArgument, p.MaxHarmonic)
	}

	all, err := plasma.Layers(p.Current, p.Frequency, p.Ion, p.MaxHarmonic)
	if err != nil {
		return nil, err
	}

	prof := &Profile{
		Params: p,
		Radii:  make([]float64, p.Points),
		Field:  make([]float64, p.Points),
	}

	step := (p.RMax - p.RMin) / float64(p.Points-1)
	for i := 0; i < p.Points; i++ {
		r := p.RMin + float64(i)*step
		prof.Radii[i] = r
		b := plasma.FieldAt(r, p.Current)
		if b < 0 {
			b = -b
		}
		prof.Field[i] = b
	}

	for _, l := range all {
		if l.Radius >= p.RMin && l.Radius <= p.RMax {
			prof.Layers = append(prof.Layers, l)
		}
	}

	return prof, nil
}
