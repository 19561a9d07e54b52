package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTcpHost_SendReceivesFramedEnvelope(t *testing.T) {
	peers := []string{"127.0.0.1:18381", "127.0.0.1:18382"}

	host0, err := NewTcpHost(0, peers)
	require.NoError(t, err)
	defer host0.Shutdown()

	host1, err := NewTcpHost(1, peers)
	require.NoError(t, err)
	defer host1.Shutdown()

	host0.Send(1, Envelope{Iteration: 7, Payload: []byte("halo-data")})

	select {
	case env := <-host1.Inbound():
		require.Equal(t, uint64(7), env.Iteration)
		require.Equal(t, []byte("halo-data"), env.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for inbound envelope")
	}
}

func TestTcpHost_ReusesConnectionAcrossSends(t *testing.T) {
	peers := []string{"127.0.0.1:18383", "127.0.0.1:18384"}

	host0, err := NewTcpHost(0, peers)
	require.NoError(t, err)
	defer host0.Shutdown()

	host1, err := NewTcpHost(1, peers)
	require.NoError(t, err)
	defer host1.Shutdown()

	host0.Send(1, Envelope{Iteration: 1, Payload: []byte("first")})
	host0.Send(1, Envelope{Iteration: 2, Payload: []byte("second")})

	var got []Envelope
	for len(got) < 2 {
		select {
		case env := <-host1.Inbound():
			got = append(got, env)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d envelopes", len(got))
		}
	}

	host0.connsMu.Lock()
	numConns := len(host0.conns)
	host0.connsMu.Unlock()
	require.Equal(t, 1, numConns)
}

func TestTcpHost_ShutdownClosesInboundChannel(t *testing.T) {
	peers := []string{"127.0.0.1:18385"}
	host, err := NewTcpHost(0, peers)
	require.NoError(t, err)

	require.NoError(t, host.Shutdown())

	_, ok := <-host.Inbound()
	require.False(t, ok)
}
