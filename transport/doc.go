// Package transport implements the cross-node wire layer: a framed
// TCP host, an OrderedCommunicator that demultiplexes inbound
// envelopes by stage iteration, and binomial-tree collectives layered
// on top. Every frame on the wire is
// length:uint64 LE || iteration:uint64 LE || payload.
package transport
