package physics

import "github.com/katalvlaran/amrcore/geom"

// RiemannHLLE computes the HLLE (Harten-Lax-van Leer-Einfeldt)
// approximate flux at the interface between left state pl and right
// state pr, along axis, for a gamma-law equation of state.
//
// The outer signal bounds are taken as the min/max of each state's own
// acoustic wavespeeds (the "Einfeldt" bound). When both lie on the
// same side of zero the upwind state's exact flux is used directly;
// otherwise the flux is the standard two-wave HLLE average.
func RiemannHLLE(pl, pr Primitive, axis geom.Axis, gammaLawIndex float64) Conserved {
	plSlow, plFast := pl.OuterWavespeeds(axis, gammaLawIndex)
	prSlow, prFast := pr.OuterWavespeeds(axis, gammaLawIndex)

	sL := math64Min(plSlow, prSlow)
	sR := math64Max(plFast, prFast)

	fl := pl.FluxVector(axis, gammaLawIndex)
	switch {
	case sL >= 0:
		return fl
	}

	fr := pr.FluxVector(axis, gammaLawIndex)
	if sR <= 0 {
		return fr
	}

	ul := pl.ToConserved(gammaLawIndex)
	ur := pr.ToConserved(gammaLawIndex)
	return hlleAverage(fl, fr, ul, ur, sL, sR)
}

func hlleAverage(fl, fr, ul, ur Conserved, sL, sR float64) Conserved {
	inv := 1 / (sR - sL)
	blend := func(fl, fr, ul, ur float64) float64 {
		return (sR*fl - sL*fr + sL*sR*(ur-ul)) * inv
	}
	return Conserved{
		MassDensity:   blend(fl.MassDensity, fr.MassDensity, ul.MassDensity, ur.MassDensity),
		Momentum1:     blend(fl.Momentum1, fr.Momentum1, ul.Momentum1, ur.Momentum1),
		Momentum2:     blend(fl.Momentum2, fr.Momentum2, ul.Momentum2, ur.Momentum2),
		EnergyDensity: blend(fl.EnergyDensity, fr.EnergyDensity, ul.EnergyDensity, ur.EnergyDensity),
	}
}

func math64Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func math64Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
