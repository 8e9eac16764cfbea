package tree

import "github.com/pbanos/irforest/sample"

// CollectSamples walks node negative-subtree-first, depth-first, and
// returns every sample subsumed by it in that order. The engine and
// the validator both depend on this exact ordering.
func CollectSamples(node Node) []*sample.Sample {
	switch n := node.(type) {
	case *Leaf:
		out := make([]*sample.Sample, len(n.Samples))
		copy(out, n.Samples)
		return out
	case *Internal:
		out := CollectSamples(n.Negative)
		return append(out, CollectSamples(n.Positive)...)
	default:
		return nil
	}
}

// partitionByCode splits samples into those lacking and those having
// code present.
func partitionByCode(samples []*sample.Sample, code int) (neg, pos []*sample.Sample) {
	for _, s := range samples {
		if s.HasCode(code) {
			pos = append(pos, s)
		} else {
			neg = append(neg, s)
		}
	}
	return neg, pos
}

// checkDisjoint panics if the same *sample.Sample object appears in
// both batches. It deliberately compares pointer identity, not SUID:
// a delete-then-insert on a live id stages the old committed object
// into batchRemove and a distinct new object into batchAdd under the
// same SUID, and that pair is a legitimate, non-overlapping update,
// not caller misuse.
func checkDisjoint(batchAdd, batchRemove []*sample.Sample) {
	if len(batchAdd) == 0 || len(batchRemove) == 0 {
		return
	}
	adding := make(map[*sample.Sample]bool, len(batchAdd))
	for _, s := range batchAdd {
		adding[s] = true
	}
	for _, s := range batchRemove {
		if adding[s] {
			panic(ErrSampleInBothBatches)
		}
	}
}
