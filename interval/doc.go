// Package interval implements IntervalMap, an associative map keyed by
// half-open integer ranges, backed by an augmented binary search tree
// (a randomized treap) that prunes subtrees by a cached maximum upper
// bound to answer overlap queries without a full scan.
//
// Node priorities are derived by hashing a per-tree insertion counter
// rather than drawn from math/rand, so traversal order (and therefore Iter's output
// order) is a deterministic function of insertion order alone — the
// same insert sequence always yields the same in-order walk.
package interval
