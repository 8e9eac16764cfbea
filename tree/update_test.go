package tree

import (
	"testing"

	"github.com/pbanos/irforest/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfectlySeparableSamples(n int) []*sample.Sample {
	samples := make([]*sample.Sample, 0, n)
	for i := 0; i < n; i++ {
		class := i % 2
		samples = append(samples, &sample.Sample{
			SUID:   string(rune('a'+i%26)) + string(rune('A'+i/26)),
			Y:      float64(class),
			XCodes: map[int]float64{1: float64(class)},
		})
	}
	return samples
}

func TestUpdateDecisionTreeSplitsOnPerfectlySeparatingCode(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	samples := perfectlySeparableSamples(20)

	root := UpdateDecisionTree(ts, leaf, samples, nil)
	internal, ok := root.(*Internal)
	require.True(t, ok, "a perfectly separating code should split the leaf")
	assert.Equal(t, 1, internal.Code)

	negLeaf, ok := internal.Negative.(*Leaf)
	require.True(t, ok)
	for _, s := range negLeaf.Samples {
		assert.Equal(t, 0, s.Class())
	}
	posLeaf, ok := internal.Positive.(*Leaf)
	require.True(t, ok)
	for _, s := range posLeaf.Samples {
		assert.Equal(t, 1, s.Class())
	}
}

func TestUpdateDecisionTreeCollapsesWhenEvidenceVanishes(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	samples := perfectlySeparableSamples(20)
	root := UpdateDecisionTree(ts, leaf, samples, nil)
	_, ok := root.(*Internal)
	require.True(t, ok)

	// Remove every sample: both children become empty, the split no
	// longer carries enough evidence, and the node should collapse
	// back to a leaf.
	root = UpdateDecisionTree(ts, root, nil, samples)
	_, isLeaf := root.(*Leaf)
	assert.True(t, isLeaf, "emptying a split node's evidence should collapse it back to a leaf")
}

func TestUpdateDecisionTreePanicsOnOverlappingBatches(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	s := &sample.Sample{SUID: "dup", Y: 1}
	assert.PanicsWithValue(t, ErrSampleInBothBatches, func() {
		UpdateDecisionTree(ts, leaf, []*sample.Sample{s}, []*sample.Sample{s})
	})
}

func TestUpdateDecisionTreeRemoveMissingSampleIsLoggedAndSkipped(t *testing.T) {
	ts := NewState(1)
	var logged []string
	ts.Logf = func(format string, args ...interface{}) {
		logged = append(logged, format)
	}
	leaf := NewEmptyLeaf(ts)
	ghost := &sample.Sample{SUID: "ghost", Y: 1}
	root := UpdateDecisionTree(ts, leaf, nil, []*sample.Sample{ghost})
	assert.NotEmpty(t, logged, "removing an absent sample should be logged, not panic")
	_, isLeaf := root.(*Leaf)
	assert.True(t, isLeaf)
}

func TestRefreshLeafValueEmptyLeafIsOne(t *testing.T) {
	l := &Leaf{}
	refreshLeafValue(l)
	assert.Equal(t, 1.0, l.Value)
}

func TestRefreshLeafValueIsClassOneProportion(t *testing.T) {
	l := &Leaf{Base: Base{C0: 3, C1: 1}}
	refreshLeafValue(l)
	assert.Equal(t, 0.25, l.Value)
}

func TestUpdateDecisionTreeAllowsDeleteThenAddOnLiveSUID(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	old := &sample.Sample{SUID: "s1", Y: 0, XCodes: map[int]float64{1: 0}}
	root := UpdateDecisionTree(ts, leaf, []*sample.Sample{old}, nil)

	// A distinct object under the same SUID, staged old-to-remove and
	// new-to-add in a single commit, must not be mistaken for the
	// caller passing one sample in both batches.
	updated := &sample.Sample{SUID: "s1", Y: 1, XCodes: map[int]float64{1: 1}}
	require.NotPanics(t, func() {
		root = UpdateDecisionTree(ts, root, []*sample.Sample{updated}, []*sample.Sample{old})
	})

	samples := CollectSamples(root)
	require.Len(t, samples, 1)
	assert.Same(t, updated, samples[0])
}

func TestUpdateDecisionTreeIdempotentOnEmptyBatches(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	samples := perfectlySeparableSamples(20)
	root := UpdateDecisionTree(ts, leaf, samples, nil)
	before := CollectSamples(root)
	root = UpdateDecisionTree(ts, root, nil, nil)
	after := CollectSamples(root)
	assert.Equal(t, len(before), len(after))
}
