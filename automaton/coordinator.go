package automaton

import "fmt"

// Coordinator drives one stage of a group of automata to completion,
// producing every task's Value() exactly once. The algorithm is
// identical across executors (spec.md §4.3): only how Value() is
// scheduled for compute differs.
type Coordinator[K comparable, M any, V any] struct {
	cfg config[K, M, V]
}

// NewCoordinator constructs a Coordinator. With no options, it runs a
// single-node stage on SerialExecutor.
func NewCoordinator[K comparable, M any, V any](opts ...Option[K, M, V]) *Coordinator[K, M, V] {
	cfg := defaultConfig[K, M, V]()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Coordinator[K, M, V]{cfg: cfg}
}

// Run drives tasks through one stage, returning every task's computed
// value once the stage's fan-in is fully satisfied. The order of
// values in the returned slice is unspecified; the set is
// deterministic given a deterministic task/message sequence.
func (c *Coordinator[K, M, V]) Run(tasks []Automaton[K, M, V]) ([]V, error) {
	seen := make(map[K]Automaton[K, M, V])
	var undelivered []Outbound[K, M]

	submit := func(t Automaton[K, M, V]) {
		c.cfg.onEligible(t.Key())
		c.cfg.executor.Submit(t)
		c.cfg.onComplete(t.Key())
	}

	for _, a := range tasks {
		key := a.Key()
		aEligible := false

		for _, out := range a.Messages() {
			if c.cfg.router != nil {
				if rank, remote := c.cfg.router(out.Dest); remote {
					if err := c.sendRemote(rank, out.Dest, out.Message); err != nil {
						return nil, err
					}
					continue
				}
			}
			if peer, ok := seen[out.Dest]; ok {
				if peer.Receive(out.Message) == Eligible {
					delete(seen, out.Dest)
					submit(peer)
				}
			} else {
				undelivered = append(undelivered, out)
			}
		}

		remaining := make([]Outbound[K, M], 0, len(undelivered))
		for _, u := range undelivered {
			if u.Dest == key {
				if a.Receive(u.Message) == Eligible {
					aEligible = true
				}
			} else {
				remaining = append(remaining, u)
			}
		}
		undelivered = remaining

		if c.cfg.comm != nil {
			for {
				payload, ok := c.cfg.comm.TryRecv()
				if !ok {
					break
				}
				dest, m, err := c.cfg.codec.Decode(payload)
				if err != nil {
					return nil, fmt.Errorf("automaton: decoding pulled envelope: %w", err)
				}
				switch {
				case dest == key && !aEligible:
					if a.Receive(m) == Eligible {
						aEligible = true
					}
				default:
					c.deliverOrBuffer(seen, &undelivered, dest, m)
				}
			}
		}

		if aEligible {
			submit(a)
		} else {
			seen[key] = a
		}
	}

	for len(seen) > 0 {
		if c.cfg.comm == nil {
			return nil, fmt.Errorf("automaton: %d task(s) never became eligible: %w", len(seen), ErrIncompleteFanIn)
		}
		payload := c.cfg.comm.Recv()
		dest, m, err := c.cfg.codec.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("automaton: decoding blocking envelope: %w", err)
		}
		c.deliverOrBuffer(seen, &undelivered, dest, m)
	}

	return c.cfg.executor.Drain(), nil
}

func (c *Coordinator[K, M, V]) deliverOrBuffer(seen map[K]Automaton[K, M, V], undelivered *[]Outbound[K, M], dest K, m M) {
	if peer, ok := seen[dest]; ok {
		if peer.Receive(m) == Eligible {
			delete(seen, dest)
			c.cfg.onEligible(peer.Key())
			c.cfg.executor.Submit(peer)
			c.cfg.onComplete(peer.Key())
		}
		return
	}
	c.cfg.logger.Debug().Any("dest", dest).Msg("buffering message for a task not yet admitted to this stage")
	*undelivered = append(*undelivered, Outbound[K, M]{Dest: dest, Message: m})
}

func (c *Coordinator[K, M, V]) sendRemote(rank int, dest K, m M) error {
	payload, err := c.cfg.codec.Encode(dest, m)
	if err != nil {
		return fmt.Errorf("automaton: encoding outbound envelope for rank %d: %w", rank, err)
	}
	c.cfg.comm.Send(rank, payload)
	return nil
}
