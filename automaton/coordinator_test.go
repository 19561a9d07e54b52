package automaton

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockTask is a minimal Automaton[string, int, string] used to test
// the coordinator algorithm in isolation from any real workload.
type mockTask struct {
	key      string
	outbound []Outbound[string, int]
	need     int
	got      int
}

func (t *mockTask) Key() string                      { return t.key }
func (t *mockTask) Messages() []Outbound[string, int] { return t.outbound }
func (t *mockTask) Receive(m int) Status {
	t.got++
	return EligibleIf(t.got >= t.need)
}
func (t *mockTask) Value() string { return fmt.Sprintf("%s:%d", t.key, t.got) }

func TestCoordinator_TwoTaskMutualMessage(t *testing.T) {
	a := &mockTask{key: "a", need: 1, outbound: []Outbound[string, int]{{Dest: "b", Message: 1}}}
	b := &mockTask{key: "b", need: 1, outbound: []Outbound[string, int]{{Dest: "a", Message: 1}}}

	c := NewCoordinator[string, int, string]()
	values, err := c.Run([]Automaton[string, int, string]{a, b})
	require.NoError(t, err)
	sort.Strings(values)
	require.Equal(t, []string{"a:1", "b:1"}, values)
}

func TestCoordinator_NoIncomingIsImmediatelyEligible(t *testing.T) {
	a := &mockTask{key: "solo", need: 0}
	c := NewCoordinator[string, int, string]()
	values, err := c.Run([]Automaton[string, int, string]{a})
	require.NoError(t, err)
	require.Equal(t, []string{"solo:0"}, values)
}

func TestCoordinator_MissingFanInWithoutCommunicatorErrors(t *testing.T) {
	a := &mockTask{key: "a", need: 1} // expects a message nobody sends
	c := NewCoordinator[string, int, string]()
	_, err := c.Run([]Automaton[string, int, string]{a})
	require.ErrorIs(t, err, ErrIncompleteFanIn)
}

func TestCoordinator_RingBroadcast(t *testing.T) {
	const n = 8
	tasks := make([]Automaton[string, int, string], n)
	for i := 0; i < n; i++ {
		next := fmt.Sprintf("node-%d", (i+1)%n)
		tasks[i] = &mockTask{
			key:      fmt.Sprintf("node-%d", i),
			need:     1,
			outbound: []Outbound[string, int]{{Dest: next, Message: i}},
		}
	}
	c := NewCoordinator[string, int, string]()
	values, err := c.Run(tasks)
	require.NoError(t, err)
	require.Len(t, values, n)
}

func TestCoordinator_RoundRobinExecutorMatchesSerial(t *testing.T) {
	a := &mockTask{key: "a", need: 1, outbound: []Outbound[string, int]{{Dest: "b", Message: 1}}}
	b := &mockTask{key: "b", need: 1, outbound: []Outbound[string, int]{{Dest: "a", Message: 1}}}

	rr := NewRoundRobinExecutor[string, int, string](2)
	defer rr.Close()
	c := NewCoordinator[string, int, string](WithExecutor[string, int, string](rr))
	values, err := c.Run([]Automaton[string, int, string]{a, b})
	require.NoError(t, err)
	sort.Strings(values)
	require.Equal(t, []string{"a:1", "b:1"}, values)
}

func TestCoordinator_WorkStealingExecutorMatchesSerial(t *testing.T) {
	a := &mockTask{key: "a", need: 1, outbound: []Outbound[string, int]{{Dest: "b", Message: 1}}}
	b := &mockTask{key: "b", need: 1, outbound: []Outbound[string, int]{{Dest: "a", Message: 1}}}

	ws := NewWorkStealingExecutor[string, int, string](2)
	defer ws.Close()
	c := NewCoordinator[string, int, string](WithExecutor[string, int, string](ws))
	values, err := c.Run([]Automaton[string, int, string]{a, b})
	require.NoError(t, err)
	sort.Strings(values)
	require.Equal(t, []string{"a:1", "b:1"}, values)
}

func TestCoordinator_OnEligibleHookFires(t *testing.T) {
	a := &mockTask{key: "solo", need: 0}
	var fired []string
	c := NewCoordinator[string, int, string](
		WithOnEligible[string, int, string](func(k string) { fired = append(fired, k) }),
	)
	_, err := c.Run([]Automaton[string, int, string]{a})
	require.NoError(t, err)
	require.Equal(t, []string{"solo"}, fired)
}
