// Package field implements Patch, an owned rectangular block of
// num_fields-wide field data tagged with a refinement level, sampleable
// across levels of an adaptive-mesh-refinement hierarchy.
//
// A Patch's data buffer is contiguous and row-major: each index (i,j)
// of its geom.IndexSpace addresses num_fields consecutive float64s.
// num_fields is a runtime value, not a type parameter, so the same
// Patch type serves conserved-variable and primitive-variable field
// sets without reallocation — a Patch is reinterpreted in place by the
// caller, never converted.
//
// Patches are never shared by reference across goroutine boundaries:
// ownership of a Patch's buffer transfers by value (the whole struct
// is copied or moved), matching the no-aliasing discipline the
// automaton executors rely on.
package field
