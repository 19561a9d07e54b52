package geom

import "errors"

// ErrEmptySpace indicates a constructed IndexSpace would have negative
// extent (lo > hi) on at least one axis. Zero extent is permitted.
var ErrEmptySpace = errors.New("geom: index space has negative extent")

// ErrOutOfRange indicates an index lies outside an IndexSpace.
var ErrOutOfRange = errors.New("geom: index out of range")
