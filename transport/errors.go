package transport

import "errors"

// ErrRoutingMissing names the condition of an outbound key with no
// entry in the routing table. No function in this package returns it.
var ErrRoutingMissing = errors.New("transport: outbound key has no rank in the routing table")

// ErrTransportDropped names the condition of a send that exhausted its
// retry budget. No function in this package returns it: TcpHost logs
// and counts such drops on its outbound worker instead.
var ErrTransportDropped = errors.New("transport: send exhausted retry budget and was dropped")

// ErrChannelClosed names the condition of a host whose outbound worker
// has shut down. No function in this package returns it.
var ErrChannelClosed = errors.New("transport: host is shut down")
