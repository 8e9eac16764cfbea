package tree

import (
	"bytes"
	"testing"

	"github.com/pbanos/irforest/internal/wire"
	"github.com/pbanos/irforest/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNodeRoundTripLeaf(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	leaf.Samples = []*sample.Sample{{SUID: "s1", Y: 1}}
	leaf.C1 = 1
	leaf.Value = 1

	samples := leaf.Samples
	idx := map[string]int{"s1": 0}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, EncodeNode(w, leaf, idx))
	require.NoError(t, w.Flush())

	r := wire.NewReader(&buf)
	decoded, err := DecodeNode(r, samples)
	require.NoError(t, err)
	decodedLeaf, ok := decoded.(*Leaf)
	require.True(t, ok)
	assert.Equal(t, leaf.ID, decodedLeaf.ID)
	assert.Equal(t, leaf.Value, decodedLeaf.Value)
	require.Len(t, decodedLeaf.Samples, 1)
	assert.Equal(t, "s1", decodedLeaf.Samples[0].SUID)
}

func TestEncodeDecodeNodeRoundTripInternal(t *testing.T) {
	ts := NewState(1)
	leaf := NewEmptyLeaf(ts)
	root := UpdateDecisionTree(ts, leaf, perfectlySeparableSamples(20), nil)

	samples := CollectSamples(root)
	idx := make(map[string]int, len(samples))
	for i, s := range samples {
		idx[s.SUID] = i
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, EncodeNode(w, root, idx))
	require.NoError(t, w.Flush())

	r := wire.NewReader(&buf)
	decoded, err := DecodeNode(r, samples)
	require.NoError(t, err)

	report := Validate(decoded)
	assert.True(t, report.OK(), "%v", report.Errors)

	original := CollectSamples(root)
	roundTripped := CollectSamples(decoded)
	require.Equal(t, len(original), len(roundTripped))
}

func TestDecodeNodeSkipsZeroedDecisionCounts(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	// code=-1 (leaf), id=1, minValidRank(0,0), c0=0, c1=0
	w.Int(-1).Uint64(1).Uint64(0).Int(0).Int(0).Int(0).Newline()
	// one decision count entry with c0p=0, c1p=0: must be skipped on load
	w.Int(1).Newline()
	w.Int(7).Int(0).Int(0).Int(0).Int(0).Uint64(99).Newline()
	// leaf body: 0 samples, value 1
	w.Int(0).Newline()
	w.Newline()
	w.Float(1).Newline()
	require.NoError(t, w.Flush())

	r := wire.NewReader(&buf)
	node, err := DecodeNode(r, nil)
	require.NoError(t, err)
	leaf, ok := node.(*Leaf)
	require.True(t, ok)
	assert.Empty(t, leaf.DC, "a decision count with c0p==0 and c1p==0 must be skipped on load")
}
