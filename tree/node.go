package tree

import (
	"fmt"
	"sort"

	"github.com/pbanos/irforest/sample"
)

// NodeID tags a node for feature ranking. It is drawn once, at node
// creation, from the owning tree's seed, and never changes for the
// lifetime of the node.
type NodeID uint64

// DecisionCounts holds the sufficient statistics a node keeps for one
// feature code: how many of the node's class-0 and class-1 samples
// have the feature present. Counts of samples lacking the feature
// (c0n, c1n) are derived from the node's totals, not stored.
type DecisionCounts struct {
	C0P, C1P int
	Rank     uint32
}

func (dc *DecisionCounts) c0n(c0 int) int { return c0 - dc.C0P }
func (dc *DecisionCounts) c1n(c1 int) int { return c1 - dc.C1P }

// rankKey orders (rank, code) pairs the way sortedCodes orders the
// decision-counts table: ascending, so the first element is the
// lowest-priority entry and the natural eviction candidate.
type rankKey struct {
	Rank uint32
	Code int
}

func (a rankKey) less(b rankKey) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Code < b.Code
}

// Base holds the fields common to every node, leaf or internal.
type Base struct {
	ID           NodeID
	C0, C1       int
	DC           map[int]*DecisionCounts
	MinValidRank rankKey
}

// Node is a decision-tree node: either a *Leaf or an *Internal.
type Node interface {
	base() *Base
	IsLeaf() bool
}

// Leaf holds the samples currently subsumed by it and a cached
// prediction value.
type Leaf struct {
	Base
	Value   float64
	Samples []*sample.Sample
}

// Internal splits its subsumed samples on Code: samples with the
// feature present go to Positive, the rest to Negative.
type Internal struct {
	Base
	Code     int
	Negative Node
	Positive Node
}

func (b *Base) base() *Base { return b }

func (l *Leaf) base() *Base     { return &l.Base }
func (l *Leaf) IsLeaf() bool    { return true }
func (n *Internal) base() *Base { return &n.Base }
func (n *Internal) IsLeaf() bool { return false }

// newBase allocates a Base with a freshly drawn node ID.
func newBase(ts *State) Base {
	return Base{
		ID: ts.nextNodeID(),
		DC: make(map[int]*DecisionCounts),
	}
}

// NewEmptyLeaf builds an empty leaf with a fresh ID, as used when a
// forest is created with n empty trees. Its value is 0, not the 1
// that refreshLeafValue assigns a node whose count drops to zero
// during an update: that convention is for nodes that once held
// samples, not for a tree that has never seen one.
func NewEmptyLeaf(ts *State) *Leaf {
	return &Leaf{Base: newBase(ts), Value: 0}
}

// sortedCodes returns the node's tracked feature codes sorted
// ascending by (rank, code) -- the table's natural eviction order,
// and the order in which ties in entropy are broken.
func sortedCodes(b *Base) []int {
	codes := make([]int, 0, len(b.DC))
	for code := range b.DC {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		ki := rankKey{b.DC[codes[i]].Rank, codes[i]}
		kj := rankKey{b.DC[codes[j]].Rank, codes[j]}
		return ki.less(kj)
	})
	return codes
}

func (b *Base) String() string {
	return fmt.Sprintf("node(id=%d c0=%d c1=%d codes=%d)", b.ID, b.C0, b.C1, len(b.DC))
}
