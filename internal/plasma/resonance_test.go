package plasma_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/icrf-tools/icrlab/internal/plasma"
)

// reltol builds an absolute tolerance from a relative one.
func reltol(want, rel float64) float64 {
	return math.Abs(want) * rel
}

var _ = Describe("ResonanceRadius", func() {
	const (
		amps = 1250.0
		freq = 55e6
	)
	hydrogen := plasma.Ion{Z: 1, A: 1}
	deuterium := plasma.Ion{Z: 1, A: 2}

	It("places the hydrogen fundamental layer", func() {
		r, err := plasma.ResonanceRadius(amps, freq, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 2.529315044, reltol(2.529315044, 1e-6)))
	})

	It("places the hydrogen second harmonic at exactly twice the fundamental", func() {
		r1, err := plasma.ResonanceRadius(amps, freq, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		r2, err := plasma.ResonanceRadius(amps, freq, hydrogen, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(r2).To(BeNumerically("~", 5.058630088, reltol(5.058630088, 1e-6)))
		Expect(r2).To(Equal(r1 * 2))
	})

	It("places the deuterium fundamental layer", func() {
		r, err := plasma.ResonanceRadius(amps, freq, deuterium, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 1.263786509, reltol(1.263786509, 1e-6)))
	})

	It("places the deuterium second harmonic layer", func() {
		r, err := plasma.ResonanceRadius(amps, freq, deuterium, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 2.527573017, reltol(2.527573017, 1e-6)))
	})

	It("scales linearly with coil current", func() {
		base, err := plasma.ResonanceRadius(amps, freq, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		scaled, err := plasma.ResonanceRadius(amps*3.5, freq, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(scaled).To(BeNumerically("~", base*3.5, reltol(base*3.5, 1e-12)))
	})

	It("scales inversely with frequency", func() {
		base, err := plasma.ResonanceRadius(amps, freq, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		halved, err := plasma.ResonanceRadius(amps, freq*2, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(halved).To(BeNumerically("~", base/2, reltol(base/2, 1e-12)))
	})

	It("moves the layer inward for heavier isotopes", func() {
		prev := math.Inf(1)
		for a := 1; a <= 4; a++ {
			r, err := plasma.ResonanceRadius(amps, freq, plasma.Ion{Z: 1, A: a}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(BeNumerically("<", prev), "A=%d should sit inside A=%d", a, a-1)
			prev = r
		}
	})

	It("carries the sign of a reversed field", func() {
		r, err := plasma.ResonanceRadius(-amps, freq, hydrogen, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("<", 0))
	})

	DescribeTable("rejects degenerate inputs",
		func(amps, freq float64, ion plasma.Ion, harmonic int) {
			_, err := plasma.ResonanceRadius(amps, freq, ion, harmonic)
			Expect(err).To(MatchError(plasma.ErrInvalidArgument))
		},
		Entry("zero frequency", amps, 0.0, hydrogen, 1),
		Entry("negative frequency", amps, -1e6, hydrogen, 1),
		Entry("A less than Z", amps, freq, plasma.Ion{Z: 2, A: 1}, 1),
		Entry("zero Z", amps, freq, plasma.Ion{Z: 0, A: 0}, 1),
		Entry("zero harmonic", amps, freq, hydrogen, 0),
		Entry("zero coil current", 0.0, freq, hydrogen, 1),
		Entry("NaN frequency", amps, math.NaN(), hydrogen, 1),
	)
})

var _ = Describe("ResonanceFrequencyAt", func() {
	hydrogen := plasma.Ion{Z: 1, A: 1}

	It("inverts ResonanceRadius", func() {
		r, err := plasma.ResonanceRadius(1250, 55e6, hydrogen, 2)
		Expect(err).NotTo(HaveOccurred())
		f, err := plasma.ResonanceFrequencyAt(r, 1250, hydrogen, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(BeNumerically("~", 55e6, reltol(55e6, 1e-9)))
	})

	It("rejects a nonpositive radius", func() {
		_, err := plasma.ResonanceFrequencyAt(0, 1250, hydrogen, 1)
		Expect(err).To(MatchError(plasma.ErrInvalidArgument))
	})
})

var _ = Describe("Layers", func() {
	It("lists harmonic surfaces as multiples of the fundamental", func() {
		layers, err := plasma.Layers(1250, 55e6, plasma.Ion{Z: 1, A: 1}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(layers).To(HaveLen(3))
		for i, l := range layers {
			Expect(l.Harmonic).To(Equal(i + 1))
			Expect(l.Radius).To(Equal(layers[0].Radius * float64(i+1)))
		}
	})

	It("propagates validation errors", func() {
		_, err := plasma.Layers(1250, 0, plasma.Ion{Z: 1, A: 1}, 3)
		Expect(err).To(MatchError(plasma.ErrInvalidArgument))
	})
})
