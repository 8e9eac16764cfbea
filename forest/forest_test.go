package forest

import (
	"bytes"
	"testing"

	"github.com/pbanos/irforest/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableSample(i int) *sample.Sample {
	class := i % 2
	return &sample.Sample{
		SUID:   "suid-" + string(rune('a'+i%26)) + string(rune('A'+i/26)),
		Y:      float64(class),
		XCodes: map[int]float64{1: float64(class)},
	}
}

func TestCreateBuildsEmptyTrees(t *testing.T) {
	f := Create(5)
	assert.Equal(t, 5, f.NTrees())
}

func TestAddReportsFreshInsertion(t *testing.T) {
	f := Create(3)
	fresh, err := f.Add(&sample.Sample{SUID: "s1", Y: 1})
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestCommitIsIdempotentWithNoPending(t *testing.T) {
	f := Create(3)
	f.Commit()
	f.Commit()
	report := f.Validate()
	assert.True(t, report.OK())
}

func TestClassifyRangeAndCommitsPending(t *testing.T) {
	f := Create(3)
	for i := 0; i < 60; i++ {
		_, err := f.Add(separableSample(i))
		require.NoError(t, err)
	}
	v := f.Classify(&sample.Sample{XCodes: map[int]float64{1: 1}})
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestClassifyPartialClampsToTreeCount(t *testing.T) {
	f := Create(3)
	for i := 0; i < 30; i++ {
		_, err := f.Add(separableSample(i))
		require.NoError(t, err)
	}
	full := f.Classify(&sample.Sample{XCodes: map[int]float64{1: 1}})
	clamped := f.ClassifyPartial(&sample.Sample{XCodes: map[int]float64{1: 1}}, 1000)
	assert.Equal(t, full, clamped)
}

func TestValidateAfterManyCommits(t *testing.T) {
	f := Create(3)
	for i := 0; i < 100; i++ {
		_, err := f.Add(separableSample(i))
		require.NoError(t, err)
	}
	f.Commit()
	for i := 0; i < 50; i++ {
		f.Remove(separableSample(i).SUID)
	}
	f.Commit()
	report := f.Validate()
	assert.True(t, report.OK(), "%v", report.Errors)
}

func TestGetSamplesEnumeratesCommittedSetWithoutDuplicates(t *testing.T) {
	f := Create(2)
	for i := 0; i < 10; i++ {
		_, err := f.Add(separableSample(i))
		require.NoError(t, err)
	}
	it := f.GetSamples()
	seen := make(map[string]bool)
	count := 0
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		assert.False(t, seen[s.SUID], "duplicate sample from iterator")
		seen[s.SUID] = true
		count++
	}
	assert.Equal(t, 10, count)
}

func TestSaveLoadRoundTripPreservesClassification(t *testing.T) {
	f := CreateWithSeed(4, 7)
	for i := 0; i < 80; i++ {
		_, err := f.Add(separableSample(i))
		require.NoError(t, err)
	}
	query := &sample.Sample{XCodes: map[int]float64{1: 1}}
	before := f.Classify(query)

	var buf bytes.Buffer
	require.NoError(t, f.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	after := loaded.Classify(query)
	assert.Equal(t, before, after)

	report := loaded.Validate()
	assert.True(t, report.OK(), "%v", report.Errors)
}

func TestAsJSONProducesOneArrayPerTree(t *testing.T) {
	f := Create(3)
	var buf bytes.Buffer
	require.NoError(t, f.AsJSON(&buf))
	assert.Contains(t, buf.String(), "[")
}

func TestStatsJSONReportsThreeEmptyLeaves(t *testing.T) {
	f := Create(3)
	var buf bytes.Buffer
	require.NoError(t, f.StatsJSON(&buf))
	assert.Contains(t, buf.String(), `"leaves":1`)
}

func TestRemoveThenAddMatchesAddAlone(t *testing.T) {
	withDeleteThenAdd := CreateWithSeed(3, 11)
	s := separableSample(1)
	_, err := withDeleteThenAdd.Add(s)
	require.NoError(t, err)
	withDeleteThenAdd.Commit()
	withDeleteThenAdd.Remove(s.SUID)
	withDeleteThenAdd.Commit()
	_, err = withDeleteThenAdd.Add(s)
	require.NoError(t, err)
	withDeleteThenAdd.Commit()

	addAlone := CreateWithSeed(3, 11)
	_, err = addAlone.Add(s)
	require.NoError(t, err)
	addAlone.Commit()

	query := &sample.Sample{XCodes: map[int]float64{1: 1}}
	assert.Equal(t, addAlone.Classify(query), withDeleteThenAdd.Classify(query))
}
