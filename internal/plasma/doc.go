// Package plasma computes ion cyclotron resonance geometry for a
// tokamak toroidal field.
//
// The field follows the ripple-free approximation B(R) = k*I/R, so the
// location of the n-th harmonic resonance layer for an ion of charge
// Z*e and mass Z*m_p + (A-Z)*m_n is closed-form:
//
//	R_c = k * n * Z * e * I / (m * 2*pi*f)
//
// All quantities are SI. Degenerate inputs (zero frequency, zero coil
// current, A < Z) are rejected with [ErrInvalidArgument] rather than
// propagated as inf or NaN.
package plasma
