package rectindex

// AdjacencyList is a minimal directed graph: two map-of-slices, one per
// direction, kept mirrored on every Insert. Adapted from the teacher's
// simple outgoing/incoming adjacency shape, generalized from string
// vertex IDs to any comparable key (here, a (Rectangle, level) pair —
// see MeshKey).
type AdjacencyList[K comparable] struct {
	outgoing map[K][]K
	incoming map[K][]K
}

// NewAdjacencyList constructs an empty AdjacencyList.
func NewAdjacencyList[K comparable]() *AdjacencyList[K] {
	return &AdjacencyList[K]{
		outgoing: make(map[K][]K),
		incoming: make(map[K][]K),
	}
}

// Insert adds the directed edge from -> to. Maintains the invariant
// that to appears in Outgoing(from) iff from appears in Incoming(to).
func (a *AdjacencyList[K]) Insert(from, to K) {
	a.outgoing[from] = append(a.outgoing[from], to)
	a.incoming[to] = append(a.incoming[to], from)
}

// Outgoing returns the keys k was observed pointing to, in insertion
// order. Returns nil if k has no outgoing edges.
func (a *AdjacencyList[K]) Outgoing(k K) []K { return a.outgoing[k] }

// Incoming returns the keys observed pointing to k, in insertion
// order. Returns nil if k has no incoming edges.
func (a *AdjacencyList[K]) Incoming(k K) []K { return a.incoming[k] }
