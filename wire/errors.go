package wire

import "errors"

// ErrTruncated indicates a payload ended before a complete mesh key or
// patch could be decoded from it.
var ErrTruncated = errors.New("wire: truncated payload")
