package automaton

// Communicator is the minimal off-node transport surface the
// coordinator needs: blocking and non-blocking receive, and send to a
// peer rank. transport.OrderedCommunicator satisfies this interface
// structurally — this package never imports transport, so single-node
// callers pay nothing for the off-node path.
type Communicator interface {
	// Send transmits an already wire-encoded envelope to the peer at
	// rank. Must not block waiting for a matching receive.
	Send(rank int, payload []byte)
	// Recv blocks until the next in-order envelope for the current
	// stage is available.
	Recv() []byte
	// TryRecv returns the next in-order envelope without blocking; ok
	// is false if none is currently available.
	TryRecv() ([]byte, bool)
}

// Codec encodes and decodes the (destination key, message) pair
// carried in an off-node envelope's payload.
type Codec[K comparable, M any] interface {
	Encode(dest K, message M) ([]byte, error)
	Decode(payload []byte) (dest K, message M, err error)
}

// Router maps a task key to the rank of the node that owns it. It
// returns ok=false for keys owned by the local node.
type Router[K comparable] func(key K) (rank int, ok bool)
