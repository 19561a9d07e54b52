package transport

// ceilLog2 returns the log-base-two of the next power of two at or
// above x: ceilLog2(8) == 3, ceilLog2(9) == 4.
func ceilLog2(x int) int {
	n := 0
	for (1 << n) < x {
		n++
	}
	return n
}

// Reducer combines two byte-slice values into one. It must be
// commutative and associative for AllReduce's result to be
// independent of tree shape.
type Reducer func(a, b []byte) []byte

// Broadcast implements a binomial-tree broadcast from rank 0. Every
// other rank must call Broadcast with value == nil; rank 0 must pass
// the value to broadcast. All ranks return the broadcast value.
func (c *OrderedCommunicator) Broadcast(value []byte) []byte {
	r, p := c.rank, c.numPeers

	if value == nil {
		value = c.Recv()
	}
	for level := ceilLog2(p) - 1; level >= 0; level-- {
		one := 1 << level
		two := 1 << (level + 1)
		if r%two == 0 && r+one < p {
			c.Send(r+one, cloneBytes(value))
		}
	}
	return value
}

// Reduce implements a binomial-tree reduce of value across all ranks
// using f. Every rank but 0 returns (nil, false); rank 0 returns the
// fully reduced value. Levels run from the nearest neighbor outward
// (ascending), so a rank that drops out does so against a valid peer
// at every step; running them in descending order would have a rank
// of 1 try to fold against rank -1 on the first step.
func (c *OrderedCommunicator) Reduce(f Reducer, value []byte) ([]byte, bool) {
	r, p := c.rank, c.numPeers

	for level := 0; level < ceilLog2(p); level++ {
		one := 1 << level
		two := 1 << (level + 1)
		if r%two == 0 {
			if r+one < p {
				value = f(value, c.Recv())
			}
		} else {
			c.Send(r-one, value)
			return nil, false
		}
	}
	return value, true
}

// AllReduce folds value across all ranks with f and returns the
// identical result on every rank.
func (c *OrderedCommunicator) AllReduce(f Reducer, value []byte) []byte {
	reduced, isRoot := c.Reduce(f, value)
	if !isRoot {
		reduced = nil
	}
	return c.Broadcast(reduced)
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
