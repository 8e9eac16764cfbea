package tree

import (
	"sort"

	"github.com/pbanos/irforest/internal/xhash"
	"github.com/pbanos/irforest/sample"
)

// zeroRank is the sentinel value of MinValidRank before any eviction
// has ever happened at a node: the initial (0,0) watermark. Rank 0 at
// code 0 is astronomically unlikely to occur from a real hash, so
// treating it as "unset" is safe.
var zeroRank = rankKey{}

// applyAdd folds one added sample into b's totals and, for every
// feature code it has present, into the matching DecisionCounts --
// inserting a fresh entry (subject to the table cap and the
// minValidRank watermark) if the code isn't tracked yet.
func applyAdd(b *Base, s *sample.Sample) {
	class := s.Class()
	for code, v := range s.XCodes {
		if v <= 0.5 {
			continue
		}
		dc, ok := b.DC[code]
		if !ok {
			dc = tryTrackCode(b, code)
			if dc == nil {
				continue
			}
		}
		if class == 1 {
			dc.C1P++
		} else {
			dc.C0P++
		}
	}
	if class == 1 {
		b.C1++
	} else {
		b.C0++
	}
	for len(b.DC) > maxCodesToKeep {
		evictLowestRanked(b)
	}
}

// applyRemove is applyAdd's inverse. A DecisionCounts that drops to
// zero on both sides is dropped from the table (but the watermark is
// left untouched -- only cap-driven eviction moves it).
func applyRemove(b *Base, s *sample.Sample) {
	class := s.Class()
	for code, v := range s.XCodes {
		if v <= 0.5 {
			continue
		}
		dc, ok := b.DC[code]
		if !ok {
			continue
		}
		if class == 1 {
			dc.C1P--
		} else {
			dc.C0P--
		}
		if dc.C0P == 0 && dc.C1P == 0 {
			delete(b.DC, code)
		}
	}
	if class == 1 {
		b.C1--
	} else {
		b.C0--
	}
}

// tryTrackCode begins tracking code at b, unless it was evicted by a
// prior cap-driven eviction and the watermark still suppresses it.
func tryTrackCode(b *Base, code int) *DecisionCounts {
	rank := xhash.CodeRank(code, uint64(b.ID))
	key := rankKey{rank, code}
	if b.MinValidRank != zeroRank && !b.MinValidRank.less(key) {
		return nil
	}
	dc := &DecisionCounts{Rank: rank}
	b.DC[code] = dc
	return dc
}

// evictLowestRanked drops the table's lowest-(rank,code) entry and
// raises the watermark just past it, so it cannot be re-tracked until
// a full recount.
func evictLowestRanked(b *Base) {
	codes := sortedCodes(b)
	if len(codes) == 0 {
		return
	}
	victim := codes[0]
	vd := b.DC[victim]
	b.MinValidRank = rankKey{vd.Rank, victim + 1}
	delete(b.DC, victim)
}

// recount rebuilds b's decision-counts table from scratch against
// samples, the node's actual current population. It is the only path
// that can re-admit a previously evicted code.
func recount(b *Base, samples []*sample.Sample) {
	b.C0, b.C1 = 0, 0
	counts := make(map[int]*DecisionCounts)
	for _, s := range samples {
		class := s.Class()
		if class == 1 {
			b.C1++
		} else {
			b.C0++
		}
		for code, v := range s.XCodes {
			if v <= 0.5 {
				continue
			}
			dc, ok := counts[code]
			if !ok {
				dc = &DecisionCounts{Rank: xhash.CodeRank(code, uint64(b.ID))}
				counts[code] = dc
			}
			if class == 1 {
				dc.C1P++
			} else {
				dc.C0P++
			}
		}
	}

	type entry struct {
		code int
		dc   *DecisionCounts
	}
	list := make([]entry, 0, len(counts))
	for code, dc := range counts {
		list = append(list, entry{code, dc})
	}
	sort.Slice(list, func(i, j int) bool {
		return (rankKey{list[i].dc.Rank, list[i].code}).less(rankKey{list[j].dc.Rank, list[j].code})
	})

	b.DC = make(map[int]*DecisionCounts, len(list))
	b.MinValidRank = zeroRank
	start := 0
	if len(list) > maxCodesToKeep {
		start = len(list) - maxCodesToKeep
		evicted := list[start-1]
		b.MinValidRank = rankKey{evicted.dc.Rank, evicted.code + 1}
	}
	for _, e := range list[start:] {
		b.DC[e.code] = e.dc
	}
}

// maybeRecount performs a full recount if the table has shrunk below
// the per-search cap and at least one eviction has happened since the
// last recount -- the condition under which a previously evicted code
// might now belong back in the table.
func maybeRecount(node Node) {
	b := node.base()
	if len(b.DC) < maxCodesToConsider && b.MinValidRank != zeroRank {
		recount(b, CollectSamples(node))
	}
}
