package tree

import "github.com/pbanos/irforest/sample"

// UpdateDecisionTree applies a batch of additions and removals to
// node and returns the (possibly restructured) resulting node. It
// panics with ErrSampleInBothBatches if the same sample object appears
// in both batches, since that can only happen through caller misuse.
//
// The update runs in two passes, matching the reference algorithm:
// the first threads the raw sample objects down to the leaves that
// hold them; the second walks the same structure recomputing counters
// and deciding whether each node should split, collapse, resplit, or
// stay as is.
func UpdateDecisionTree(ts *State, node Node, batchAdd, batchRemove []*sample.Sample) Node {
	checkDisjoint(batchAdd, batchRemove)
	applySampleSet(node, batchAdd, batchRemove, ts.logf)
	return updateNode(ts, node, batchAdd, batchRemove)
}

// applySampleSet is pass 1: it mutates leaf sample slices in place and
// recurses only into children whose partition of the batch is
// non-empty.
func applySampleSet(node Node, batchAdd, batchRemove []*sample.Sample, logf func(string, ...interface{})) {
	switch n := node.(type) {
	case *Leaf:
		if len(batchRemove) > 0 {
			n.Samples = removeSamples(n.Samples, batchRemove, logf)
		}
		if len(batchAdd) > 0 {
			n.Samples = append(n.Samples, batchAdd...)
		}
	case *Internal:
		negAdd, posAdd := partitionByCode(batchAdd, n.Code)
		negRem, posRem := partitionByCode(batchRemove, n.Code)
		if len(negAdd) > 0 || len(negRem) > 0 {
			applySampleSet(n.Negative, negAdd, negRem, logf)
		}
		if len(posAdd) > 0 || len(posRem) > 0 {
			applySampleSet(n.Positive, posAdd, posRem, logf)
		}
	}
}

func removeSamples(samples []*sample.Sample, toRemove []*sample.Sample, logf func(string, ...interface{})) []*sample.Sample {
	remove := make(map[string]bool, len(toRemove))
	for _, s := range toRemove {
		remove[s.SUID] = true
	}
	found := make(map[string]bool, len(toRemove))
	out := make([]*sample.Sample, 0, len(samples))
	for _, s := range samples {
		if remove[s.SUID] {
			found[s.SUID] = true
			continue
		}
		out = append(out, s)
	}
	for _, s := range toRemove {
		if !found[s.SUID] && logf != nil {
			logf("tree: remove: sample %q not found at leaf, skipping", s.SUID)
		}
	}
	return out
}

// updateNode is pass 2: recompute node's own counters from the
// batches, recount from scratch if eviction has starved its table,
// then decide the node's new shape.
func updateNode(ts *State, node Node, batchAdd, batchRemove []*sample.Sample) Node {
	b := node.base()
	for _, s := range batchRemove {
		applyRemove(b, s)
	}
	for _, s := range batchAdd {
		applyAdd(b, s)
	}
	maybeRecount(node)

	switch n := node.(type) {
	case *Leaf:
		if code, ok := findMinEntropyCode(b); ok {
			return splitLeaf(ts, n, code)
		}
		refreshLeafValue(n)
		return n
	case *Internal:
		code, ok := findMinEntropyCode(b)
		if !ok {
			return collapseToLeaf(ts, n)
		}
		if code != n.Code {
			return resplit(ts, n, code)
		}
		negAdd, posAdd := partitionByCode(batchAdd, n.Code)
		negRem, posRem := partitionByCode(batchRemove, n.Code)
		if len(negAdd) > 0 || len(negRem) > 0 {
			n.Negative = updateNode(ts, n.Negative, negAdd, negRem)
		}
		if len(posAdd) > 0 || len(posRem) > 0 {
			n.Positive = updateNode(ts, n.Positive, posAdd, posRem)
		}
		return n
	default:
		return node
	}
}

func refreshLeafValue(l *Leaf) {
	if l.C0+l.C1 == 0 {
		l.Value = 1
		return
	}
	l.Value = float64(l.C1) / float64(l.C0+l.C1)
}

// splitLeaf turns l into an Internal splitting on code, inheriting
// l's id, totals, table and watermark, with two fresh child leaves
// built from its partitioned samples. Each child is then itself
// offered a cascade split.
func splitLeaf(ts *State, l *Leaf, code int) Node {
	neg, pos := partitionByCode(l.Samples, code)
	internal := &Internal{
		Base: Base{ID: l.ID, C0: l.C0, C1: l.C1, DC: l.DC, MinValidRank: l.MinValidRank},
		Code: code,
	}
	internal.Negative = cascadeSplit(ts, buildLeaf(ts, neg))
	internal.Positive = cascadeSplit(ts, buildLeaf(ts, pos))
	return internal
}

// resplit discards both of n's children in favor of a different
// splitting code, keeping n's own id, totals and table.
func resplit(ts *State, n *Internal, code int) Node {
	samples := CollectSamples(n)
	neg, pos := partitionByCode(samples, code)
	n.Code = code
	n.Negative = cascadeSplit(ts, buildLeaf(ts, neg))
	n.Positive = cascadeSplit(ts, buildLeaf(ts, pos))
	return n
}

// collapseToLeaf replaces n with a fresh leaf holding every sample it
// subsumed, in negative-first traversal order.
func collapseToLeaf(ts *State, n *Internal) Node {
	return buildLeaf(ts, CollectSamples(n))
}

func buildLeaf(ts *State, samples []*sample.Sample) *Leaf {
	l := &Leaf{Base: newBase(ts), Samples: samples}
	recount(&l.Base, samples)
	refreshLeafValue(l)
	return l
}

// cascadeSplit offers a freshly built leaf the chance to split again
// immediately, so that constructing a node from a large batch doesn't
// require waiting for a follow-up commit to reach its natural depth.
func cascadeSplit(ts *State, node Node) Node {
	l, ok := node.(*Leaf)
	if !ok {
		return node
	}
	if code, ok := findMinEntropyCode(&l.Base); ok {
		return splitLeaf(ts, l, code)
	}
	return node
}
