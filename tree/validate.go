package tree

import (
	"fmt"

	"github.com/pbanos/irforest/sample"
)

// Report accumulates validation failures the way the reference
// implementation streams its diagnostics: failures don't stop the
// walk, they're all collected for the caller to inspect.
type Report struct {
	Errors []string
}

func (r *Report) fail(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// OK reports whether no failures were recorded.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Validate performs a full recursive structural audit of node and
// returns a Report of anything that disagrees with its invariants.
func Validate(node Node) *Report {
	r := &Report{}
	validateNode(node, r)
	return r
}

func validateNode(node Node, r *Report) {
	b := node.base()
	samples := CollectSamples(node)
	alt := walkIterative(node)
	if !sameSamples(samples, alt) {
		r.fail("node %d: traversal mismatch between recursive and iterative walk", b.ID)
	}

	seen := make(map[string]bool, len(samples))
	var c0, c1 int
	for _, s := range samples {
		if seen[s.SUID] {
			r.fail("node %d: duplicate sample suid %q", b.ID, s.SUID)
		}
		seen[s.SUID] = true
		if s.Class() == 1 {
			c1++
		} else {
			c0++
		}
	}
	if c0 != b.C0 || c1 != b.C1 {
		r.fail("node %d: stored totals c0=%d c1=%d disagree with sample walk (%d,%d)", b.ID, b.C0, b.C1, c0, c1)
	}

	for code, dc := range b.DC {
		if dc.C0P < 0 || dc.C1P < 0 || dc.C0P > b.C0 || dc.C1P > b.C1 {
			r.fail("node %d: decision counts for code %d out of range (c0p=%d c1p=%d c0=%d c1=%d)", b.ID, code, dc.C0P, dc.C1P, b.C0, b.C1)
		}
	}

	shadow := &Base{ID: b.ID, DC: make(map[int]*DecisionCounts)}
	recount(shadow, samples)
	compareTables(b, shadow, r)

	switch n := node.(type) {
	case *Leaf:
		if len(n.Samples) != n.C0+n.C1 {
			r.fail("leaf %d: sample count %d != c0+c1 (%d)", n.ID, len(n.Samples), n.C0+n.C1)
		}
	case *Internal:
		negB, posB := n.Negative.base(), n.Positive.base()
		if negB.C0+posB.C0 != b.C0 || negB.C1+posB.C1 != b.C1 {
			r.fail("internal %d: children totals (%d,%d)+(%d,%d) don't sum to parent (%d,%d)", b.ID, negB.C0, negB.C1, posB.C0, posB.C1, b.C0, b.C1)
		}
		if dc, ok := b.DC[n.Code]; ok {
			if dc.c0n(b.C0) != negB.C0 || dc.c1n(b.C1) != negB.C1 || dc.C0P != posB.C0 || dc.C1P != posB.C1 {
				r.fail("internal %d: split code %d counts don't match children", b.ID, n.Code)
			}
		}
		validateNode(n.Negative, r)
		validateNode(n.Positive, r)
	}
}

// compareTables checks the stored table against a freshly recounted
// shadow table, but only on codes that are within both tables' top-30
// search window -- codes only one side bothered to track under the
// eviction policy are allowed to disagree.
func compareTables(stored, shadow *Base, r *Report) {
	storedTop := topCodes(stored, maxCodesToConsider)
	shadowTop := topCodes(shadow, maxCodesToConsider)
	for code, sd := range storedTop {
		if xd, ok := shadowTop[code]; ok {
			if sd.C0P != xd.C0P || sd.C1P != xd.C1P {
				r.fail("node %d: stored decision counts for code %d (c0p=%d c1p=%d) disagree with recount (c0p=%d c1p=%d)",
					stored.ID, code, sd.C0P, sd.C1P, xd.C0P, xd.C1P)
			}
		}
	}
}

func topCodes(b *Base, n int) map[int]*DecisionCounts {
	codes := sortedCodes(b)
	if len(codes) > n {
		codes = codes[len(codes)-n:]
	}
	out := make(map[int]*DecisionCounts, len(codes))
	for _, c := range codes {
		out[c] = b.DC[c]
	}
	return out
}

// walkIterative re-derives the negative-first traversal with an
// explicit stack, independently of CollectSamples' recursion, so
// Validate can cross-check the two against each other.
func walkIterative(node Node) []*sample.Sample {
	var out []*sample.Sample
	stack := []Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := n.(type) {
		case *Leaf:
			out = append(out, t.Samples...)
		case *Internal:
			stack = append(stack, t.Positive, t.Negative)
		}
	}
	return out
}

func sameSamples(a, b []*sample.Sample) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].SUID != b[i].SUID {
			return false
		}
	}
	return true
}
