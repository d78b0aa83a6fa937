package plasma

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument marks rejection of a physically degenerate input
// set. Callers test with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ResonanceRadius returns the major radius R_c in meters where the
// harmonic-th multiple of the ion cyclotron frequency equals the applied
// wave frequency freq (Hz), for a toroidal field B(R) = k*I/R driven by
// coil current amps.
//
// Negative current flips the field direction and carries its sign into
// R_c; zero current means no confining field and is rejected.
func ResonanceRadius(amps, freq float64, ion Ion, harmonic int) (float64, error) {
	if err := ion.Validate(); err != nil {
		return 0, err
	}
	if harmonic < 1 {
		return 0, fmt.Errorf("%w: harmonic must be >= 1, got %d", ErrInvalidArgument, harmonic)
	}
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, fmt.Errorf("%w: frequency must be positive and finite, got %g", ErrInvalidArgument, freq)
	}
	if amps == 0 || math.IsNaN(amps) || math.IsInf(amps, 0) {
		return 0, fmt.Errorf("%w: coil current must be nonzero and finite, got %g", ErrInvalidArgument, amps)
	}

	return FieldConstant * float64(harmonic) * ion.Charge() * amps / (ion.Mass() * 2 * math.Pi * freq), nil
}

// FieldAt returns the toroidal field magnitude B (tesla) at major
// radius r for coil current amps.
func FieldAt(r, amps float64) float64 {
	return FieldConstant * amps / r
}

// CyclotronFrequency returns the harmonic-th multiple of the ion
// cyclotron frequency (Hz) in field b (tesla).
func CyclotronFrequency(b float64, ion Ion, harmonic int) float64 {
	return float64(harmonic) * ion.Charge() * b / (ion.Mass() * 2 * math.Pi)
}

// ResonanceFrequencyAt inverts ResonanceRadius: the wave frequency (Hz)
// that places the harmonic-th resonance layer at major radius r.
func ResonanceFrequencyAt(r, amps float64, ion Ion, harmonic int) (float64, error) {
	if err := ion.Validate(); err != nil {
		return 0, err
	}
	if harmonic < 1 {
		return 0, fmt.Errorf("%w: harmonic must be >= 1, got %d", ErrInvalidArgument, harmonic)
	}
	if r <= 0 {
		return 0, fmt.Errorf("%w: major radius must be positive, got %g", ErrInvalidArgument, r)
	}
	if amps == 0 {
		return 0, fmt.Errorf("%w: coil current must be nonzero, got %g", ErrInvalidArgument, amps)
	}
	return CyclotronFrequency(FieldAt(r, amps), ion, harmonic), nil
}

// Layer is one harmonic resonance surface.
type Layer struct {
	Harmonic int
	Radius   float64
}

// Layers returns the resonance radii of harmonics 1..maxN. The radii
// scale linearly with the harmonic index, so the first call does the
// validation for all of them.
func Layers(amps, freq float64, ion Ion, maxN int) ([]Layer, error) {
	fundamental, err := ResonanceRadius(amps, freq, ion, 1)
	if err != nil {
		return nil, err
	}
	layers := make([]Layer, 0, maxN)
	for n := 1; n <= maxN; n++ {
		layers = append(layers, Layer{Harmonic: n, Radius: fundamental * float64(n)})
	}
	return layers, nil
}
