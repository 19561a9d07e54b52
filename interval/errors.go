package interval

import "errors"

// ErrEmptyRange indicates an Insert was attempted with lo > hi.
var ErrEmptyRange = errors.New("interval: empty or inverted range")
