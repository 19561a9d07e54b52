package automaton

import (
	"sync"
	"time"

	"github.com/gammazero/deque"
	"golang.org/x/sync/errgroup"
)

// StatsSink records the wall-clock duration of each Value() call a
// WorkStealingExecutor runs. See NewPrometheusStatsSink for a
// Prometheus-backed implementation.
type StatsSink interface {
	Observe(d time.Duration)
}

// WorkStealingExecutor shares one deque of eligible tasks across a
// fixed pool of worker goroutines supervised by an errgroup.Group:
// any worker that empties the deque blocks on a condition variable
// until a new task is submitted or the executor is closed. This spreads
// work more evenly under uneven per-task cost than RoundRobinExecutor's
// fixed cursor, at the price of a single shared lock.
type WorkStealingExecutor[K comparable, M any, V any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  *deque.Deque[Automaton[K, M, V]]
	closed bool
	stats  StatsSink

	resultsMu sync.Mutex
	results   []V
	wg        sync.WaitGroup

	group *errgroup.Group
}

// WSOption configures a WorkStealingExecutor at construction.
type WSOption[K comparable, M any, V any] func(*WorkStealingExecutor[K, M, V])

// WithStatsSink attaches a StatsSink that observes each Value() call's
// wall-clock duration.
func WithStatsSink[K comparable, M any, V any](sink StatsSink) WSOption[K, M, V] {
	return func(e *WorkStealingExecutor[K, M, V]) {
		e.stats = sink
	}
}

// NewWorkStealingExecutor starts numWorkers goroutines draining a
// shared deque. numWorkers must be positive.
func NewWorkStealingExecutor[K comparable, M any, V any](numWorkers int, opts ...WSOption[K, M, V]) *WorkStealingExecutor[K, M, V] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	e := &WorkStealingExecutor[K, M, V]{queue: deque.New[Automaton[K, M, V]]()}
	e.cond = sync.NewCond(&e.mu)
	for _, opt := range opts {
		opt(e)
	}

	group := &errgroup.Group{}
	for i := 0; i < numWorkers; i++ {
		group.Go(func() error {
			e.work()
			return nil
		})
	}
	e.group = group
	return e
}

func (e *WorkStealingExecutor[K, M, V]) work() {
	for {
		e.mu.Lock()
		for e.queue.Len() == 0 && !e.closed {
			e.cond.Wait()
		}
		if e.queue.Len() == 0 && e.closed {
			e.mu.Unlock()
			return
		}
		task := e.queue.PopFront()
		e.mu.Unlock()

		start := time.Now()
		value := task.Value()
		if e.stats != nil {
			e.stats.Observe(time.Since(start))
		}

		e.resultsMu.Lock()
		e.results = append(e.results, value)
		e.resultsMu.Unlock()
		e.wg.Done()
	}
}

// Submit pushes task onto the shared deque and wakes one waiting
// worker.
func (e *WorkStealingExecutor[K, M, V]) Submit(task Automaton[K, M, V]) {
	e.wg.Add(1)
	e.mu.Lock()
	e.queue.PushBack(task)
	e.mu.Unlock()
	e.cond.Signal()
}

// Drain blocks until every submitted task has completed, then returns
// the accumulated results and resets for the next stage.
func (e *WorkStealingExecutor[K, M, V]) Drain() []V {
	e.wg.Wait()
	e.resultsMu.Lock()
	defer e.resultsMu.Unlock()
	out := e.results
	e.results = nil
	return out
}

// Close signals every worker to exit once the deque is empty and
// waits for them to do so. Call once the executor will no longer be
// used.
func (e *WorkStealingExecutor[K, M, V]) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
	return e.group.Wait()
}
