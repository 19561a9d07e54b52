// Package wire is the two-way adapter between field.Patch and the
// compact binary encoding carried in a transport envelope's payload:
// the same "adapter between two representations" role this module's
// predecessor package described for third-party graph libraries, now
// serving the mesh's own (key, Patch) pairs instead.
//
// The only format wire knows is the one spec'd for cross-node
// messages: a destination key (a rectangle and level) followed by a
// patch (its own space, level, field count, and row-major data),
// every integer and float little-endian. transport and physics never
// encode or decode patches themselves; they hand wire the values and
// get bytes back, or vice versa.
package wire
