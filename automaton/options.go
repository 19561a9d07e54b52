package automaton

import "github.com/rs/zerolog"

// Option configures a Coordinator via functional arguments, following
// this module's standard WithXxx convention.
type Option[K comparable, M any, V any] func(*config[K, M, V])

type config[K comparable, M any, V any] struct {
	executor   Executor[K, M, V]
	comm       Communicator
	codec      Codec[K, M]
	router     Router[K]
	logger     zerolog.Logger
	onEligible func(key K)
	onComplete func(key K)
}

func defaultConfig[K comparable, M any, V any]() config[K, M, V] {
	return config[K, M, V]{
		executor:   NewSerialExecutor[K, M, V](),
		logger:     zerolog.Nop(),
		onEligible: func(K) {},
		onComplete: func(K) {},
	}
}

// WithExecutor selects the concurrency strategy used to compute
// eligible tasks' values. Defaults to SerialExecutor.
func WithExecutor[K comparable, M any, V any](e Executor[K, M, V]) Option[K, M, V] {
	return func(c *config[K, M, V]) {
		if e != nil {
			c.executor = e
		}
	}
}

// WithCommunicator attaches an off-node transport. Required if any
// task's outbound messages may be addressed to a key owned by another
// node (see WithRouter), or if the stage must block for remote fan-in
// after the local task sequence is exhausted.
func WithCommunicator[K comparable, M any, V any](comm Communicator, codec Codec[K, M]) Option[K, M, V] {
	return func(c *config[K, M, V]) {
		c.comm = comm
		c.codec = codec
	}
}

// WithRouter supplies the key -> rank routing table used to decide
// whether an outbound message stays local or is sent over the wire.
func WithRouter[K comparable, M any, V any](router Router[K]) Option[K, M, V] {
	return func(c *config[K, M, V]) {
		c.router = router
	}
}

// WithLogger attaches a structured logger for dropped/buffered
// message events. Defaults to a no-op logger.
func WithLogger[K comparable, M any, V any](logger zerolog.Logger) Option[K, M, V] {
	return func(c *config[K, M, V]) {
		c.logger = logger
	}
}

// WithOnEligible registers a callback invoked the moment a task
// transitions to Eligible, before it is submitted to the executor.
func WithOnEligible[K comparable, M any, V any](fn func(key K)) Option[K, M, V] {
	return func(c *config[K, M, V]) {
		if fn != nil {
			c.onEligible = fn
		}
	}
}

// WithOnComplete registers a callback invoked right after a task has
// been handed to the executor's Submit. It fires before the stage's
// Drain; with a parallel executor the task's Value() may still be
// running when it is called.
func WithOnComplete[K comparable, M any, V any](fn func(key K)) Option[K, M, V] {
	return func(c *config[K, M, V]) {
		if fn != nil {
			c.onComplete = fn
		}
	}
}
