// Package sample defines the Sample type shared by the tree update
// engine and the forest, and a Store that buffers pending Add/Remove
// calls until the next commit.
package sample

import (
	"fmt"
	"sort"
)

// Sample is a labeled observation. A feature code is present iff its
// value in XCodes is greater than 0.5; the target class is 1 iff Y is
// at least 0.5.
type Sample struct {
	SUID   string
	XCodes map[int]float64
	Y      float64
}

// HasCode reports whether code is present in the sample.
func (s *Sample) HasCode(code int) bool {
	v, ok := s.XCodes[code]
	return ok && v > 0.5
}

// Class returns 0 or 1, the sample's binary target class.
func (s *Sample) Class() int {
	if s.Y >= 0.5 {
		return 1
	}
	return 0
}

// Store holds the committed samples of a forest plus the pending
// additions and removals staged since the last commit.
type Store struct {
	samples  map[string]*Sample
	toAdd    map[string]*Sample
	toRemove map[string]*Sample
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		samples:  make(map[string]*Sample),
		toAdd:    make(map[string]*Sample),
		toRemove: make(map[string]*Sample),
	}
}

// Add stages s for insertion at the next commit, returning true iff
// this is a fresh insertion rather than a replacement of an existing
// pending add. Resubmitting a committed sample id with no pending add
// counts as fresh; it also stages the prior value for removal so the
// commit performs a delete+insert.
func (st *Store) Add(s *Sample) (bool, error) {
	if s == nil || s.SUID == "" {
		return false, fmt.Errorf("adding sample: empty suid")
	}
	_, hadPendingAdd := st.toAdd[s.SUID]
	if committed, ok := st.samples[s.SUID]; ok {
		if _, alreadyRemoving := st.toRemove[s.SUID]; !alreadyRemoving {
			st.toRemove[s.SUID] = committed
		}
	}
	st.toAdd[s.SUID] = s
	return !hadPendingAdd, nil
}

// Remove stages suid for removal at the next commit, returning true
// iff it cancelled a pending add or scheduled removal of a committed
// sample. Returns false if suid is neither pending nor committed.
func (st *Store) Remove(suid string) bool {
	if _, ok := st.toAdd[suid]; ok {
		delete(st.toAdd, suid)
		return true
	}
	if committed, ok := st.samples[suid]; ok {
		if _, already := st.toRemove[suid]; !already {
			st.toRemove[suid] = committed
			return true
		}
		return false
	}
	return false
}

// PendingAdds returns the staged additions, sorted by SUID for
// deterministic iteration order.
func (st *Store) PendingAdds() []*Sample {
	return sortedValues(st.toAdd)
}

// PendingRemoves returns the staged removals, sorted by SUID.
func (st *Store) PendingRemoves() []*Sample {
	return sortedValues(st.toRemove)
}

// HasPending reports whether there is anything to commit.
func (st *Store) HasPending() bool {
	return len(st.toAdd) > 0 || len(st.toRemove) > 0
}

// Commit reconciles the pending sets into the committed sample set and
// clears them.
func (st *Store) Commit() {
	for suid := range st.toRemove {
		delete(st.samples, suid)
	}
	for suid, s := range st.toAdd {
		st.samples[suid] = s
	}
	st.toRemove = make(map[string]*Sample)
	st.toAdd = make(map[string]*Sample)
}

// Get returns the committed sample with the given id, if any.
func (st *Store) Get(suid string) (*Sample, bool) {
	s, ok := st.samples[suid]
	return s, ok
}

// Len returns the number of committed samples.
func (st *Store) Len() int {
	return len(st.samples)
}

// All returns every committed sample, sorted by SUID.
func (st *Store) All() []*Sample {
	return sortedValues(st.samples)
}

func sortedValues(m map[string]*Sample) []*Sample {
	out := make([]*Sample, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SUID < out[j].SUID })
	return out
}
