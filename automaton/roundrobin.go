package automaton

import (
	"sync"

	"github.com/JekaMas/workerpool"
)

// RoundRobinExecutor wraps numWorkers single-worker pools and submits
// each eligible task to the next pool in cyclic order, mirroring the
// reference ThreadPool's current_worker_index cursor: worker n gets a
// job, then worker (n+1)%numWorkers gets the next one, regardless of
// how long each job takes.
type RoundRobinExecutor[K comparable, M any, V any] struct {
	pools  []*workerpool.WorkerPool
	cursor int

	mu      sync.Mutex
	wg      sync.WaitGroup
	results []V
}

// NewRoundRobinExecutor constructs a RoundRobinExecutor with the given
// number of single-worker pools. numWorkers must be positive.
func NewRoundRobinExecutor[K comparable, M any, V any](numWorkers int) *RoundRobinExecutor[K, M, V] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pools := make([]*workerpool.WorkerPool, numWorkers)
	for i := range pools {
		pools[i] = workerpool.New(1)
	}
	return &RoundRobinExecutor[K, M, V]{pools: pools}
}

// Submit hands task to the next pool in the cycle.
func (e *RoundRobinExecutor[K, M, V]) Submit(task Automaton[K, M, V]) {
	pool := e.pools[e.cursor]
	e.cursor = (e.cursor + 1) % len(e.pools)

	e.wg.Add(1)
	pool.Submit(func() {
		defer e.wg.Done()
		value := task.Value()
		e.mu.Lock()
		e.results = append(e.results, value)
		e.mu.Unlock()
	})
}

// Drain blocks until every submitted task has computed, then returns
// the results and resets for the next stage.
func (e *RoundRobinExecutor[K, M, V]) Drain() []V {
	e.wg.Wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.results
	e.results = nil
	return out
}

// Close releases the underlying worker pools. Call once the executor
// will no longer be used.
func (e *RoundRobinExecutor[K, M, V]) Close() {
	for _, p := range e.pools {
		p.StopWait()
	}
}
