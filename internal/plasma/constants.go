package plasma

// CODATA 2018 recommended values.
const (
	ElementaryCharge float64 = 1.602176634e-19   // C
	ProtonMass       float64 = 1.67262192369e-27 // kg
	NeutronMass      float64 = 1.67492749804e-27 // kg
)

// FieldConstant folds the coil count, turns per coil and vacuum
// permeability of the device into the ripple-free toroidal field law
// B(R) = FieldConstant * I / R.
const FieldConstant = 0.0073 // T*m/A
