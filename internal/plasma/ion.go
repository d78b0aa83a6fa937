package plasma

import (
	"fmt"
	"strings"
)

// Ion identifies an ion species by proton count Z and nucleon count A.
// Mass is built from nucleon rest masses; electron mass and binding
// energy are below the accuracy of the field model and ignored.
type Ion struct {
	Name string
	Z    int
	A    int
}

// Mass returns the ion rest mass in kg.
func (i Ion) Mass() float64 {
	return float64(i.Z)*ProtonMass + float64(i.A-i.Z)*NeutronMass
}

// Charge returns the ion charge in coulombs.
func (i Ion) Charge() float64 {
	return float64(i.Z) * ElementaryCharge
}

func (i Ion) Validate() error {
	if i.Z < 1 {
		return fmt.Errorf("%w: atomic number Z must be positive, got %d", ErrInvalidArgument, i.Z)
	}
	if i.A < i.Z {
		return fmt.Errorf("%w: mass number A=%d less than atomic number Z=%d", ErrInvalidArgument, i.A, i.Z)
	}
	if i.Mass() <= 0 {
		return fmt.Errorf("%w: nonpositive ion mass for Z=%d A=%d", ErrInvalidArgument, i.Z, i.A)
	}
	return nil
}

func (i Ion) String() string {
	if i.Name != "" {
		return i.Name
	}
	return fmt.Sprintf("Z%dA%d", i.Z, i.A)
}

// species commonly run in ICRF heating scenarios.
var species = []Ion{
	{Name: "H", Z: 1, A: 1},
	{Name: "D", Z: 1, A: 2},
	{Name: "T", Z: 1, A: 3},
	{Name: "He3", Z: 2, A: 3},
	{Name: "He4", Z: 2, A: 4},
	{Name: "Li7", Z: 3, A: 7},
	{Name: "B11", Z: 5, A: 11},
}

// Species looks up a named ion, case-insensitively.
func Species(name string) (Ion, error) {
	for _, ion := range species {
		if strings.EqualFold(ion.Name, name) {
			return ion, nil
		}
	}
	return Ion{}, fmt.Errorf("unknown ion species: %s", name)
}

// ListSpecies returns the built-in species table in declaration order.
func ListSpecies() []Ion {
	out := make([]Ion, len(species))
	copy(out, species)
	return out
}
