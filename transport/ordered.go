package transport

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// FrameSender is the minimal outbound surface OrderedCommunicator
// needs; *TcpHost satisfies it, and tests can substitute a fake.
type FrameSender interface {
	Send(rank int, env Envelope)
}

// OrderedCommunicator demultiplexes a raw inbound envelope stream by
// stage iteration: envelopes for the current stage are released
// immediately, envelopes for a future stage are buffered until
// Increment catches up to them, and envelopes for a past stage are
// logged and dropped (spec.md §3: Ordered transport state).
type OrderedCommunicator struct {
	rank     int
	numPeers int
	sender   FrameSender

	curIteration atomic.Uint64

	bufMu  sync.Mutex
	buffer map[uint64][][]byte

	orderedMu    sync.Mutex
	orderedCond  *sync.Cond
	orderedQueue [][]byte
	closed       bool

	logger         zerolog.Logger
	droppedCounter prometheus.Counter
}

// OrderedOption configures an OrderedCommunicator at construction.
type OrderedOption func(*OrderedCommunicator)

// WithOrderedLogger attaches a structured logger. Defaults to a no-op
// logger.
func WithOrderedLogger(logger zerolog.Logger) OrderedOption {
	return func(c *OrderedCommunicator) { c.logger = logger }
}

// WithOrderedMetrics registers a dropped-envelope counter with reg.
func WithOrderedMetrics(reg prometheus.Registerer) OrderedOption {
	return func(c *OrderedCommunicator) {
		c.droppedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amrcore_transport_stale_envelopes_dropped_total",
			Help: "Total number of inbound envelopes dropped for arriving before the current stage.",
		})
		reg.MustRegister(c.droppedCounter)
	}
}

// NewOrderedCommunicator starts a demultiplexer goroutine draining
// inbound and dispatching into the per-stage buffer or the ordered
// queue. current_iteration starts at 0.
func NewOrderedCommunicator(rank, numPeers int, inbound <-chan Envelope, sender FrameSender, opts ...OrderedOption) *OrderedCommunicator {
	c := &OrderedCommunicator{
		rank:     rank,
		numPeers: numPeers,
		sender:   sender,
		buffer:   make(map[uint64][][]byte),
		logger:   zerolog.Nop(),
	}
	c.orderedCond = sync.NewCond(&c.orderedMu)
	for _, opt := range opts {
		opt(c)
	}

	go c.demux(inbound)
	return c
}

func (c *OrderedCommunicator) demux(inbound <-chan Envelope) {
	for env := range inbound {
		// The classify-then-dispatch below must run under bufMu, held
		// across the curIteration read, so it can't interleave with
		// Increment's advance-and-flush: otherwise an envelope can be
		// classified against a stale "future" iteration, lose the
		// race to Increment, and then sit in a buffer slot that was
		// already flushed and will never be flushed again.
		c.bufMu.Lock()
		cur := c.curIteration.Load()
		switch {
		case env.Iteration < cur:
			c.bufMu.Unlock()
			if c.droppedCounter != nil {
				c.droppedCounter.Inc()
			}
			c.logger.Error().Uint64("envelope_iteration", env.Iteration).Uint64("current", cur).
				Msg("dropping stale envelope")
		case env.Iteration == cur:
			c.pushOrdered(env.Payload)
			c.bufMu.Unlock()
		default:
			c.buffer[env.Iteration] = append(c.buffer[env.Iteration], env.Payload)
			c.bufMu.Unlock()
			c.logger.Debug().Uint64("envelope_iteration", env.Iteration).Uint64("current", cur).
				Msg("buffering envelope for a future stage")
		}
	}
	c.orderedMu.Lock()
	c.closed = true
	c.orderedMu.Unlock()
	c.orderedCond.Broadcast()
}

func (c *OrderedCommunicator) pushOrdered(payload []byte) {
	c.orderedMu.Lock()
	c.orderedQueue = append(c.orderedQueue, payload)
	c.orderedMu.Unlock()
	c.orderedCond.Signal()
}

// Increment advances current_iteration by exactly 1 and flushes any
// envelopes buffered for the new current stage, preserving their
// arrival order. The executor calls this once per stage boundary,
// before iterating the next stage's task list.
func (c *OrderedCommunicator) Increment() {
	c.bufMu.Lock()
	next := c.curIteration.Add(1)
	msgs := c.buffer[next]
	delete(c.buffer, next)
	for _, m := range msgs {
		c.pushOrdered(m)
	}
	c.bufMu.Unlock()
}

// Rank returns this communicator's rank.
func (c *OrderedCommunicator) Rank() int { return c.rank }

// Size returns the number of peers in the communicator.
func (c *OrderedCommunicator) Size() int { return c.numPeers }

// Send tags payload with the current iteration and hands it to the
// underlying sender.
func (c *OrderedCommunicator) Send(rank int, payload []byte) {
	c.sender.Send(rank, Envelope{Iteration: c.curIteration.Load(), Payload: payload})
}

// Recv blocks for the next in-order envelope.
func (c *OrderedCommunicator) Recv() []byte {
	c.orderedMu.Lock()
	defer c.orderedMu.Unlock()
	for len(c.orderedQueue) == 0 && !c.closed {
		c.orderedCond.Wait()
	}
	if len(c.orderedQueue) == 0 {
		return nil
	}
	msg := c.orderedQueue[0]
	c.orderedQueue = c.orderedQueue[1:]
	return msg
}

// TryRecv returns the next in-order envelope without blocking.
func (c *OrderedCommunicator) TryRecv() ([]byte, bool) {
	c.orderedMu.Lock()
	defer c.orderedMu.Unlock()
	if len(c.orderedQueue) == 0 {
		return nil, false
	}
	msg := c.orderedQueue[0]
	c.orderedQueue = c.orderedQueue[1:]
	return msg, true
}
