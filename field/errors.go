package field

import "errors"

// ErrOutOfRange indicates a slice request indexes outside the patch's
// index space. A programmer error; callers should treat it as fatal
// for the stage (spec.md §7: OutOfRange).
var ErrOutOfRange = errors.New("field: index out of range")

// ErrShapeMismatch indicates a destination patch passed to MapInto
// does not match the source's geometry.
var ErrShapeMismatch = errors.New("field: destination patch shape mismatch")

// ErrBadNumFields indicates a non-positive field count was requested.
var ErrBadNumFields = errors.New("field: num_fields must be positive")
