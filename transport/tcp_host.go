package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// outboundFrame is one item on TcpHost's outbound queue: a destination
// rank and the envelope to send it.
type outboundFrame struct {
	rank int
	env  Envelope
}

// TcpHost is one node's TCP endpoint: a listening socket accepting
// inbound frames, and a single outbound worker draining a queue of
// (rank, envelope) pairs, dialing (or reusing) a connection per peer
// and writing the framed wire format.
type TcpHost struct {
	rank  int
	peers []string

	listener net.Listener
	inbound  chan Envelope
	outbound chan outboundFrame

	connsMu sync.Mutex
	conns   map[int]net.Conn

	maxRetries uint
	logger     zerolog.Logger

	retryCounter prometheus.Counter
	dropCounter  prometheus.Counter

	group  *errgroup.Group
	cancel context.CancelFunc
}

// HostOption configures a TcpHost at construction.
type HostOption func(*TcpHost)

// WithMaxRetries bounds the number of send attempts per envelope
// before it is logged and dropped (spec.md §7: TransportDropped).
// Defaults to 5.
func WithMaxRetries(n uint) HostOption {
	return func(h *TcpHost) {
		if n > 0 {
			h.maxRetries = n
		}
	}
}

// WithHostLogger attaches a structured logger. Defaults to a no-op
// logger.
func WithHostLogger(logger zerolog.Logger) HostOption {
	return func(h *TcpHost) { h.logger = logger }
}

// WithHostMetrics registers retry/drop counters with reg. Safe to omit;
// metrics are simply not recorded.
func WithHostMetrics(reg prometheus.Registerer) HostOption {
	return func(h *TcpHost) {
		h.retryCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amrcore_transport_send_retries_total",
			Help: "Total number of TCP send retries across all peers.",
		})
		h.dropCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amrcore_transport_send_drops_total",
			Help: "Total number of envelopes dropped after exhausting their retry budget.",
		})
		reg.MustRegister(h.retryCounter, h.dropCounter)
	}
}

// NewTcpHost binds a listening socket on peers[rank] and starts the
// accept loop and outbound worker, supervised by an errgroup.Group.
func NewTcpHost(rank int, peers []string, opts ...HostOption) (*TcpHost, error) {
	if rank < 0 || rank >= len(peers) {
		return nil, fmt.Errorf("transport: NewTcpHost: rank %d out of range for %d peers", rank, len(peers))
	}
	listener, err := net.Listen("tcp", peers[rank])
	if err != nil {
		return nil, fmt.Errorf("transport: NewTcpHost: listen on %s: %w", peers[rank], err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	h := &TcpHost{
		rank:       rank,
		peers:      peers,
		listener:   listener,
		inbound:    make(chan Envelope, 256),
		outbound:   make(chan outboundFrame, 256),
		conns:      make(map[int]net.Conn),
		maxRetries: 5,
		logger:     zerolog.Nop(),
		group:      group,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(h)
	}

	group.Go(func() error { return h.acceptLoop(gctx) })
	group.Go(func() error { return h.outboundLoop() })

	return h, nil
}

// Inbound returns the channel frames arrive on as they are received.
func (h *TcpHost) Inbound() <-chan Envelope { return h.inbound }

// Send enqueues env for delivery to peer rank. Returns immediately;
// delivery (with retry) happens on the outbound worker.
func (h *TcpHost) Send(rank int, env Envelope) {
	h.outbound <- outboundFrame{rank: rank, env: env}
}

// Shutdown closes the outbound queue, stops the accept loop and
// listener, waits for the outbound worker to finish every frame already
// queued, then closes peer connections and the inbound channel. It is
// the explicit teardown this module uses in place of a destructor.
// Calling Send after Shutdown panics, since the outbound channel is
// closed.
func (h *TcpHost) Shutdown() error {
	close(h.outbound)
	h.cancel()
	_ = h.listener.Close()
	err := h.group.Wait()

	h.connsMu.Lock()
	for rank, conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, rank)
	}
	h.connsMu.Unlock()

	close(h.inbound)
	return err
}

func (h *TcpHost) acceptLoop(ctx context.Context) error {
	for {
		conn, err := h.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			h.logger.Error().Err(err).Msg("accept failed")
			return err
		}
		go h.handleConn(ctx, conn)
	}
}

func (h *TcpHost) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	for {
		env, err := ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				h.logger.Debug().Err(err).Msg("inbound connection closed")
			}
			return
		}
		select {
		case h.inbound <- env:
		case <-ctx.Done():
			return
		}
	}
}

// outboundLoop drains h.outbound until Shutdown closes it, so every
// frame queued before Shutdown is attempted rather than abandoned.
// It uses a background context for sendWithRetry's backoff, not the
// host's cancelable context, precisely so that Shutdown's cancel()
// (which only needs to unstick acceptLoop) cannot cut a drain-in-
// progress short; maxRetries already bounds how long a single frame
// can take.
func (h *TcpHost) outboundLoop() error {
	for frame := range h.outbound {
		h.sendWithRetry(context.Background(), frame)
	}
	return nil
}

func (h *TcpHost) sendWithRetry(ctx context.Context, frame outboundFrame) {
	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		conn, err := h.connFor(frame.rank)
		if err != nil {
			return struct{}{}, err
		}
		if err := WriteFrame(conn, frame.env); err != nil {
			h.dropConn(frame.rank)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(h.maxRetries),
	)
	if attempt > 1 && h.retryCounter != nil {
		h.retryCounter.Add(float64(attempt - 1))
	}
	if err != nil {
		if h.dropCounter != nil {
			h.dropCounter.Inc()
		}
		h.logger.Error().Err(err).Int("rank", frame.rank).Uint64("iteration", frame.env.Iteration).
			Msg("dropping envelope after exhausting retry budget")
	}
}

func (h *TcpHost) connFor(rank int) (net.Conn, error) {
	h.connsMu.Lock()
	defer h.connsMu.Unlock()

	if conn, ok := h.conns[rank]; ok {
		return conn, nil
	}
	conn, err := net.DialTimeout("tcp", h.peers[rank], 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("transport: dial rank %d (%s): %w", rank, h.peers[rank], err)
	}
	h.conns[rank] = conn
	return conn, nil
}

func (h *TcpHost) dropConn(rank int) {
	h.connsMu.Lock()
	defer h.connsMu.Unlock()
	if conn, ok := h.conns[rank]; ok {
		_ = conn.Close()
		delete(h.conns, rank)
	}
}
