package physics

import (
	"math"

	"github.com/katalvlaran/amrcore/geom"
)

// Primitive is the four-field 2D Euler primitive state: mass density,
// the two in-plane velocity components, and gas pressure.
type Primitive struct {
	MassDensity float64
	Velocity1   float64
	Velocity2   float64
	GasPressure float64
}

// PrimitiveFromSlice reads a Primitive out of a four-element slice in
// field order, as stored in a Patch cell.
func PrimitiveFromSlice(s []float64) Primitive {
	return Primitive{MassDensity: s[0], Velocity1: s[1], Velocity2: s[2], GasPressure: s[3]}
}

// WriteToSlice writes p into dst in field order.
func (p Primitive) WriteToSlice(dst []float64) {
	dst[0], dst[1], dst[2], dst[3] = p.MassDensity, p.Velocity1, p.Velocity2, p.GasPressure
}

// Velocity returns the velocity component along axis.
func (p Primitive) Velocity(axis geom.Axis) float64 {
	if axis == geom.AxisI {
		return p.Velocity1
	}
	return p.Velocity2
}

// VelocitySquared returns the squared magnitude of the in-plane
// velocity vector.
func (p Primitive) VelocitySquared() float64 {
	return p.Velocity1*p.Velocity1 + p.Velocity2*p.Velocity2
}

// SoundSpeedSquared returns the squared adiabatic sound speed for a
// gamma-law gas.
func (p Primitive) SoundSpeedSquared(gammaLawIndex float64) float64 {
	return gammaLawIndex * p.GasPressure / p.MassDensity
}

// MaxSignalSpeed bounds the fastest wave speed carried by this state,
// used by callers computing a CFL-limited time step.
func (p Primitive) MaxSignalSpeed(gammaLawIndex float64) float64 {
	return math.Sqrt(p.VelocitySquared()) + math.Sqrt(p.SoundSpeedSquared(gammaLawIndex))
}

// OuterWavespeeds returns the two acoustic characteristic speeds along
// axis: the normal velocity plus or minus the sound speed.
func (p Primitive) OuterWavespeeds(axis geom.Axis, gammaLawIndex float64) (slow, fast float64) {
	cs := math.Sqrt(p.SoundSpeedSquared(gammaLawIndex))
	vn := p.Velocity(axis)
	return vn - cs, vn + cs
}

// ToConserved maps this primitive state to its conserved form.
func (p Primitive) ToConserved(gammaLawIndex float64) Conserved {
	d := p.MassDensity
	vsq := p.VelocitySquared()
	return Conserved{
		MassDensity:   d,
		Momentum1:     d * p.Velocity1,
		Momentum2:     d * p.Velocity2,
		EnergyDensity: d*vsq*0.5 + p.GasPressure/(gammaLawIndex-1),
	}
}

// FluxVector returns the Euler flux of this state through a face whose
// normal is axis: the convective transport of each conserved quantity
// plus the pressure's contribution to the normal momentum and energy
// equations.
func (p Primitive) FluxVector(axis geom.Axis, gammaLawIndex float64) Conserved {
	pg := p.GasPressure
	vn := p.Velocity(axis)
	u := p.ToConserved(gammaLawIndex)

	f := Conserved{
		MassDensity:   u.MassDensity * vn,
		Momentum1:     u.Momentum1 * vn,
		Momentum2:     u.Momentum2 * vn,
		EnergyDensity: u.EnergyDensity*vn + pg*vn,
	}
	if axis == geom.AxisI {
		f.Momentum1 += pg
	} else {
		f.Momentum2 += pg
	}
	return f
}
