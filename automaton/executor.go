package automaton

// Executor runs the compute-intensive Value() call for tasks the
// coordinator has determined are eligible. The three implementations
// in this package (SerialExecutor, RoundRobinExecutor,
// WorkStealingExecutor) all guarantee: each submitted task's Value()
// runs exactly once, and Drain returns every result submitted since
// the last Drain, in an unspecified order.
type Executor[K comparable, M any, V any] interface {
	// Submit enqueues an eligible task to have its Value() computed.
	Submit(task Automaton[K, M, V])
	// Drain blocks until every task submitted so far has completed,
	// then returns their results and resets for the next stage.
	Drain() []V
}
