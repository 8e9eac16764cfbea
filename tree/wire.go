package tree

import (
	"fmt"

	"github.com/pbanos/irforest/internal/wire"
	"github.com/pbanos/irforest/sample"
)

// EncodeNode writes node and its subtree in the pre-order wire format:
// a header line (code, id, minValidRank, totals), the decision-counts
// table, and either a leaf body (sample tags plus value) or the two
// child subtrees. sampleIndex maps a sample's SUID to the integer tag
// it was assigned in the forest's sample table.
func EncodeNode(w *wire.Writer, node Node, sampleIndex map[string]int) error {
	b := node.base()
	code := -1
	if n, ok := node.(*Internal); ok {
		code = n.Code
	}
	w.Int(code).Uint64(uint64(b.ID)).Uint64(uint64(b.MinValidRank.Rank)).Int(b.MinValidRank.Code).Int(b.C0).Int(b.C1).Newline()
	writeDecisionCounts(w, b)

	switch n := node.(type) {
	case *Leaf:
		w.Int(len(n.Samples)).Newline()
		for _, s := range n.Samples {
			tag, ok := sampleIndex[s.SUID]
			if !ok {
				return fmt.Errorf("tree: encode: sample %q not in sample table", s.SUID)
			}
			w.Int(tag)
		}
		w.Newline()
		w.Float(n.Value).Newline()
		return nil
	case *Internal:
		if err := EncodeNode(w, n.Negative, sampleIndex); err != nil {
			return err
		}
		return EncodeNode(w, n.Positive, sampleIndex)
	default:
		return fmt.Errorf("tree: encode: unknown node type %T", node)
	}
}

func writeDecisionCounts(w *wire.Writer, b *Base) {
	codes := sortedCodes(b)
	w.Int(len(codes)).Newline()
	for _, code := range codes {
		dc := b.DC[code]
		w.Int(code).Int(0).Int(0).Int(dc.C0P).Int(dc.C1P).Uint64(uint64(dc.Rank)).Newline()
	}
}

// DecodeNode reads one node and its subtree from r, resolving leaf
// sample tags against samples (indexed by the position they were
// saved in).
func DecodeNode(r *wire.Reader, samples []*sample.Sample) (Node, error) {
	code, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading code: %w", err)
	}
	id, err := r.Uint64()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading id: %w", err)
	}
	rank, err := r.Uint64()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading minValidRank.rank: %w", err)
	}
	rankCode, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading minValidRank.code: %w", err)
	}
	c0, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading c0: %w", err)
	}
	c1, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading c1: %w", err)
	}
	nDC, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("tree: decode: reading nDC: %w", err)
	}
	dc := make(map[int]*DecisionCounts, nDC)
	for i := 0; i < nDC; i++ {
		dcode, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("tree: decode: decision count %d: reading code: %w", i, err)
		}
		if _, err := r.Int(); err != nil { // legacy placeholder
			return nil, fmt.Errorf("tree: decode: decision count %d: reading placeholder: %w", i, err)
		}
		if _, err := r.Int(); err != nil { // legacy placeholder
			return nil, fmt.Errorf("tree: decode: decision count %d: reading placeholder: %w", i, err)
		}
		c0p, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("tree: decode: decision count %d: reading c0p: %w", i, err)
		}
		c1p, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("tree: decode: decision count %d: reading c1p: %w", i, err)
		}
		rk, err := r.Uint64()
		if err != nil {
			return nil, fmt.Errorf("tree: decode: decision count %d: reading rank: %w", i, err)
		}
		if c0p == 0 && c1p == 0 {
			continue
		}
		dc[dcode] = &DecisionCounts{C0P: c0p, C1P: c1p, Rank: uint32(rk)}
	}
	base := Base{ID: NodeID(id), C0: c0, C1: c1, DC: dc, MinValidRank: rankKey{uint32(rank), rankCode}}

	if code == -1 {
		n, err := r.Int()
		if err != nil {
			return nil, fmt.Errorf("tree: decode: reading leaf sample count: %w", err)
		}
		leafSamples := make([]*sample.Sample, n)
		for i := 0; i < n; i++ {
			tag, err := r.Int()
			if err != nil {
				return nil, fmt.Errorf("tree: decode: reading sample tag %d: %w", i, err)
			}
			if tag < 0 || tag >= len(samples) {
				return nil, fmt.Errorf("tree: decode: sample tag %d out of range (have %d samples)", tag, len(samples))
			}
			leafSamples[i] = samples[tag]
		}
		value, err := r.Float()
		if err != nil {
			return nil, fmt.Errorf("tree: decode: reading leaf value: %w", err)
		}
		return &Leaf{Base: base, Samples: leafSamples, Value: value}, nil
	}

	neg, err := DecodeNode(r, samples)
	if err != nil {
		return nil, err
	}
	pos, err := DecodeNode(r, samples)
	if err != nil {
		return nil, err
	}
	return &Internal{Base: base, Code: code, Negative: neg, Positive: pos}, nil
}
