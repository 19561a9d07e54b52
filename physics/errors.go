package physics

import "errors"

// ErrNegativeMassDensity is returned when recovering primitive
// variables from a conserved state whose mass density is negative.
var ErrNegativeMassDensity = errors.New("physics: negative mass density")

// ErrNegativeGasPressure is returned when recovering primitive
// variables from a conserved state whose implied gas pressure is
// negative.
var ErrNegativeGasPressure = errors.New("physics: negative gas pressure")
