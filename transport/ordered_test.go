package transport

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSender records every outbound envelope in memory, keyed by
// destination rank, for assertions without a live socket.
type fakeSender struct {
	mu  sync.Mutex
	out map[int][]Envelope
}

func newFakeSender() *fakeSender {
	return &fakeSender{out: make(map[int][]Envelope)}
}

func (f *fakeSender) Send(rank int, env Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out[rank] = append(f.out[rank], env)
}

func (f *fakeSender) sent(rank int) []Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Envelope(nil), f.out[rank]...)
}

func TestOrderedCommunicator_CurrentIterationDeliveredImmediately(t *testing.T) {
	inbound := make(chan Envelope, 4)
	c := NewOrderedCommunicator(0, 2, inbound, newFakeSender())

	inbound <- Envelope{Iteration: 0, Payload: []byte("now")}

	select {
	case msg := <-waitRecv(c):
		require.Equal(t, []byte("now"), msg)
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func TestOrderedCommunicator_FutureIterationBufferedUntilIncrement(t *testing.T) {
	inbound := make(chan Envelope, 4)
	c := NewOrderedCommunicator(0, 2, inbound, newFakeSender())

	inbound <- Envelope{Iteration: 1, Payload: []byte("later")}
	time.Sleep(20 * time.Millisecond)

	_, ok := c.TryRecv()
	require.False(t, ok, "future-stage envelope must not be delivered early")

	c.Increment()

	select {
	case msg := <-waitRecv(c):
		require.Equal(t, []byte("later"), msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for buffered envelope to flush")
	}
}

func TestOrderedCommunicator_PastIterationDropped(t *testing.T) {
	inbound := make(chan Envelope, 4)
	c := NewOrderedCommunicator(0, 2, inbound, newFakeSender())

	c.Increment()
	c.Increment()

	inbound <- Envelope{Iteration: 0, Payload: []byte("stale")}
	time.Sleep(20 * time.Millisecond)

	_, ok := c.TryRecv()
	require.False(t, ok, "stale envelope must be dropped, not delivered")
}

func TestOrderedCommunicator_SendTagsCurrentIteration(t *testing.T) {
	sender := newFakeSender()
	inbound := make(chan Envelope)
	c := NewOrderedCommunicator(0, 2, inbound, sender)

	c.Increment()
	c.Increment()
	c.Send(1, []byte("payload"))

	sent := sender.sent(1)
	require.Len(t, sent, 1)
	require.Equal(t, uint64(2), sent[0].Iteration)
	require.Equal(t, []byte("payload"), sent[0].Payload)
}

func TestOrderedCommunicator_TryRecvNonBlockingWhenEmpty(t *testing.T) {
	inbound := make(chan Envelope)
	c := NewOrderedCommunicator(0, 2, inbound, newFakeSender())

	_, ok := c.TryRecv()
	require.False(t, ok)
}

// waitRecv polls Recv on a goroutine so tests can select on it with a
// timeout; Recv itself blocks indefinitely on an empty, open queue.
func waitRecv(c *OrderedCommunicator) <-chan []byte {
	ch := make(chan []byte, 1)
	go func() { ch <- c.Recv() }()
	return ch
}
