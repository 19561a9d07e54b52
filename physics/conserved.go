package physics

import (
	"fmt"

	"github.com/katalvlaran/amrcore/geom"
)

// Conserved is the four-field 2D Euler conserved state: mass density,
// the two in-plane momentum components, and energy density. The
// three-dimensional reference this is adapted from also carries a
// momentum_3 component; it is always zero for a 2D patch and is
// dropped here rather than carried as dead weight.
type Conserved struct {
	MassDensity   float64
	Momentum1     float64
	Momentum2     float64
	EnergyDensity float64
}

// ConservedFromSlice reads a Conserved out of a four-element slice in
// field order, as stored in a Patch cell.
func ConservedFromSlice(s []float64) Conserved {
	return Conserved{MassDensity: s[0], Momentum1: s[1], Momentum2: s[2], EnergyDensity: s[3]}
}

// WriteToSlice writes u into dst in field order.
func (u Conserved) WriteToSlice(dst []float64) {
	dst[0], dst[1], dst[2], dst[3] = u.MassDensity, u.Momentum1, u.Momentum2, u.EnergyDensity
}

// MomentumSquared returns the squared magnitude of the in-plane
// momentum vector.
func (u Conserved) MomentumSquared() float64 {
	return u.Momentum1*u.Momentum1 + u.Momentum2*u.Momentum2
}

// Momentum returns the momentum component along axis.
func (u Conserved) Momentum(axis geom.Axis) float64 {
	if axis == geom.AxisI {
		return u.Momentum1
	}
	return u.Momentum2
}

// ToPrimitive recovers the primitive state, failing with
// ErrNegativeMassDensity or ErrNegativeGasPressure if the recovered
// state is unphysical.
func (u Conserved) ToPrimitive(gammaLawIndex float64) (Primitive, error) {
	if u.MassDensity < 0 {
		return Primitive{}, fmt.Errorf("physics: ToPrimitive: density %g: %w", u.MassDensity, ErrNegativeMassDensity)
	}
	ek := 0.5 * u.MomentumSquared() / u.MassDensity
	et := u.EnergyDensity - ek
	pg := et * (gammaLawIndex - 1)
	if pg < 0 {
		return Primitive{}, fmt.Errorf("physics: ToPrimitive: pressure %g: %w", pg, ErrNegativeGasPressure)
	}
	return Primitive{
		MassDensity: u.MassDensity,
		Velocity1:   u.Momentum1 / u.MassDensity,
		Velocity2:   u.Momentum2 / u.MassDensity,
		GasPressure: pg,
	}, nil
}
