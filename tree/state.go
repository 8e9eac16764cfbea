package tree

import "math/rand"

// State is the mutable context threaded through every update (a forest
// shares one State across all of its trees):
// the random source node ids are drawn from, and an optional sink for
// soft, non-fatal inconsistencies the update engine encounters (such
// as a removal that names a sample no longer present at its leaf).
//
// A State is not safe for concurrent use; the package has no internal
// locking, matching the single-threaded model the forest assumes.
type State struct {
	rand *rand.Rand
	Logf func(format string, args ...interface{})
}

// NewState returns a State whose node-id draws are reproducible for a
// given seed: a single PRNG is advanced across every node created
// through this State, rather than reseeded per node.
func NewState(seed int64) *State {
	return &State{rand: rand.New(rand.NewSource(seed))}
}

func (ts *State) nextNodeID() NodeID {
	return NodeID(ts.rand.Uint64())
}

func (ts *State) logf(format string, args ...interface{}) {
	if ts.Logf != nil {
		ts.Logf(format, args...)
	}
}
