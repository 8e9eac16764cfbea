package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleHasCode(t *testing.T) {
	s := &Sample{SUID: "s1", XCodes: map[int]float64{1: 1, 2: 0.4, 3: 0.5}}
	assert.True(t, s.HasCode(1))
	assert.False(t, s.HasCode(2))
	assert.False(t, s.HasCode(3))
	assert.False(t, s.HasCode(4))
}

func TestSampleClass(t *testing.T) {
	assert.Equal(t, 1, (&Sample{Y: 0.5}).Class())
	assert.Equal(t, 1, (&Sample{Y: 1}).Class())
	assert.Equal(t, 0, (&Sample{Y: 0.49}).Class())
}

func TestStoreAddRejectsEmptySUID(t *testing.T) {
	st := NewStore()
	_, err := st.Add(&Sample{})
	require.Error(t, err)
}

func TestStoreAddFreshVsReplacement(t *testing.T) {
	st := NewStore()
	fresh, err := st.Add(&Sample{SUID: "s1", Y: 1})
	require.NoError(t, err)
	assert.True(t, fresh)
	st.Commit()

	fresh, err = st.Add(&Sample{SUID: "s1", Y: 0})
	require.NoError(t, err)
	assert.False(t, fresh, "resubmitting a committed id is a replacement, not a fresh insertion")
	require.Equal(t, 1, len(st.PendingRemoves()), "replacing a committed sample stages its prior value for removal")
	require.Equal(t, 1, len(st.PendingAdds()))
}

func TestStoreRemovePendingAddCancelsIt(t *testing.T) {
	st := NewStore()
	_, err := st.Add(&Sample{SUID: "s1", Y: 1})
	require.NoError(t, err)
	assert.True(t, st.Remove("s1"))
	assert.Empty(t, st.PendingAdds())
}

func TestStoreRemoveUnknownReturnsFalse(t *testing.T) {
	st := NewStore()
	assert.False(t, st.Remove("nope"))
}

func TestStoreCommitIsIdempotentWhenEmpty(t *testing.T) {
	st := NewStore()
	assert.False(t, st.HasPending())
	st.Commit()
	assert.Equal(t, 0, st.Len())
}

func TestStoreAllSortedBySUID(t *testing.T) {
	st := NewStore()
	for _, suid := range []string{"c", "a", "b"} {
		_, err := st.Add(&Sample{SUID: suid, Y: 1})
		require.NoError(t, err)
	}
	st.Commit()
	all := st.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].SUID, all[1].SUID, all[2].SUID})
}

func TestStoreGetAfterCommit(t *testing.T) {
	st := NewStore()
	_, err := st.Add(&Sample{SUID: "s1", Y: 1, XCodes: map[int]float64{1: 1}})
	require.NoError(t, err)
	st.Commit()
	s, ok := st.Get("s1")
	require.True(t, ok)
	assert.Equal(t, 1.0, s.Y)
}
