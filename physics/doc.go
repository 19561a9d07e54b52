// Package physics implements the two-dimensional compressible Euler
// equations as a reference PatchUpdate automaton: conserved and
// primitive variable pairs, the HLLE approximate Riemann solver used
// to compute interface fluxes, and the PatchUpdate type that wires the
// solver into the automaton/executor machinery defined in the
// automaton and rectindex packages.
//
// Field order is fixed throughout: conserved state is
// [mass_density, momentum_1, momentum_2, energy_density], primitive
// state is [mass_density, velocity_1, velocity_2, gas_pressure]. A
// third momentum/velocity component exists in the three-dimensional
// formulation this solver is adapted from but is always zero here;
// this package never carries it.
package physics
