// Package forest implements the fixed-size ordered collection of
// decision trees: deterministic 2-of-3 sample routing, batched
// commits, averaged classification and the forest-level wire and
// JSON serialization formats.
package forest

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pbanos/irforest/internal/wire"
	"github.com/pbanos/irforest/internal/xhash"
	"github.com/pbanos/irforest/sample"
	"github.com/pbanos/irforest/tree"
	treejson "github.com/pbanos/irforest/tree/json"
)

// defaultSeed is the node-id generator's starting seed for a forest
// created without an explicit one.
const defaultSeed = 1

// Forest is an ordered set of decision trees sharing one sample
// store. It is not safe for concurrent use.
type Forest struct {
	trees []tree.Node
	store *sample.Store
	state *tree.State
	seed  int64
}

// Create builds a forest of nTrees empty trees.
func Create(nTrees int) *Forest {
	return create(nTrees, defaultSeed)
}

// CreateWithSeed builds a forest of nTrees empty trees whose node ids
// are drawn from a caller-chosen seed, for reproducible tests.
func CreateWithSeed(nTrees int, seed int64) *Forest {
	return create(nTrees, seed)
}

func create(nTrees int, seed int64) *Forest {
	f := &Forest{
		store: sample.NewStore(),
		state: tree.NewState(seed),
		seed:  seed,
		trees: make([]tree.Node, nTrees),
	}
	for i := range f.trees {
		f.trees[i] = tree.NewEmptyLeaf(f.state)
	}
	return f
}

// SetLogger installs a sink for soft inconsistencies the update
// engine encounters (for example a removal naming a sample no longer
// present at its leaf). The default is silence.
func (f *Forest) SetLogger(logf func(format string, args ...interface{})) {
	f.state.Logf = logf
}

// NTrees returns the number of trees in the forest.
func (f *Forest) NTrees() int { return len(f.trees) }

// Add stages s for insertion at the next commit. It returns true iff
// this is a fresh sample id rather than a replacement.
func (f *Forest) Add(s *sample.Sample) (bool, error) {
	return f.store.Add(s)
}

// Remove stages suid for removal at the next commit.
func (f *Forest) Remove(suid string) bool {
	return f.store.Remove(suid)
}

// Commit applies every staged addition and removal to the trees that
// own the affected samples under the forest's routing scheme, then
// reconciles the sample store.
func (f *Forest) Commit() {
	if !f.store.HasPending() {
		return
	}
	adds := f.store.PendingAdds()
	removes := f.store.PendingRemoves()
	for i, root := range f.trees {
		treeAdds := routedTo(adds, i)
		treeRemoves := routedTo(removes, i)
		if len(treeAdds) == 0 && len(treeRemoves) == 0 {
			continue
		}
		f.trees[i] = tree.UpdateDecisionTree(f.state, root, treeAdds, treeRemoves)
	}
	f.store.Commit()
}

func routedTo(samples []*sample.Sample, treeIndex int) []*sample.Sample {
	var out []*sample.Sample
	for _, s := range samples {
		if xhash.RouteToTree(treeIndex, s.SUID) {
			out = append(out, s)
		}
	}
	return out
}

// Classify commits any pending mutations and returns the average of
// every tree's leaf value for s.
func (f *Forest) Classify(s *sample.Sample) float64 {
	f.Commit()
	return averageOver(f.trees, s)
}

// ClassifyPartial is like Classify but averages only the first n
// trees. n is clamped to the tree count.
func (f *Forest) ClassifyPartial(s *sample.Sample, n int) float64 {
	f.Commit()
	if n > len(f.trees) {
		n = len(f.trees)
	}
	if n <= 0 {
		return 0
	}
	return averageOver(f.trees[:n], s)
}

func averageOver(trees []tree.Node, s *sample.Sample) float64 {
	if len(trees) == 0 {
		return 0
	}
	var sum float64
	for _, root := range trees {
		sum += classify(root, s)
	}
	return sum / float64(len(trees))
}

func classify(node tree.Node, s *sample.Sample) float64 {
	for {
		switch n := node.(type) {
		case *tree.Leaf:
			return n.Value
		case *tree.Internal:
			if s.HasCode(n.Code) {
				node = n.Positive
			} else {
				node = n.Negative
			}
		default:
			return 0
		}
	}
}

// ValidationReport aggregates every tree's validation report.
type ValidationReport struct {
	Errors []string
}

// OK reports whether no failures were recorded across any tree.
func (r *ValidationReport) OK() bool { return len(r.Errors) == 0 }

// Validate commits any pending mutations and audits every tree's
// structure against the decision-counts and sample-count invariants.
func (f *Forest) Validate() *ValidationReport {
	f.Commit()
	report := &ValidationReport{}
	for i, root := range f.trees {
		tr := tree.Validate(root)
		for _, e := range tr.Errors {
			report.Errors = append(report.Errors, fmt.Sprintf("tree %d: %s", i, e))
		}
	}
	return report
}

// AsJSON commits any pending mutations and writes the forest as a
// JSON array of per-tree nested-array trees.
func (f *Forest) AsJSON(w io.Writer) error {
	f.Commit()
	values := make([]interface{}, len(f.trees))
	for i, root := range f.trees {
		v, err := treejson.Value(root)
		if err != nil {
			return err
		}
		values[i] = v
	}
	return json.NewEncoder(w).Encode(values)
}

// TreeStats summarizes one tree's shape.
type TreeStats struct {
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
	MaxDepth int `json:"maxDepth"`
	Samples  int `json:"samples"`
}

// StatsJSON commits any pending mutations and writes a JSON array of
// per-tree TreeStats.
func (f *Forest) StatsJSON(w io.Writer) error {
	f.Commit()
	stats := make([]TreeStats, len(f.trees))
	for i, root := range f.trees {
		stats[i] = treeStats(root, 0)
	}
	return json.NewEncoder(w).Encode(stats)
}

func treeStats(node tree.Node, depth int) TreeStats {
	switch n := node.(type) {
	case *tree.Leaf:
		return TreeStats{Nodes: 1, Leaves: 1, MaxDepth: depth, Samples: len(n.Samples)}
	case *tree.Internal:
		neg := treeStats(n.Negative, depth+1)
		pos := treeStats(n.Positive, depth+1)
		maxDepth := neg.MaxDepth
		if pos.MaxDepth > maxDepth {
			maxDepth = pos.MaxDepth
		}
		return TreeStats{
			Nodes:    1 + neg.Nodes + pos.Nodes,
			Leaves:   neg.Leaves + pos.Leaves,
			MaxDepth: maxDepth,
			Samples:  neg.Samples + pos.Samples,
		}
	default:
		return TreeStats{}
	}
}

// SampleIterator is a finite, non-restartable iterator over a
// forest's committed samples.
type SampleIterator struct {
	samples []*sample.Sample
	pos     int
}

// Next returns the next sample, or false once exhausted.
func (it *SampleIterator) Next() (*sample.Sample, bool) {
	if it.pos >= len(it.samples) {
		return nil, false
	}
	s := it.samples[it.pos]
	it.pos++
	return s, true
}

// GetSamples commits any pending mutations and returns an iterator
// over the committed samples.
func (f *Forest) GetSamples() *SampleIterator {
	f.Commit()
	return &SampleIterator{samples: f.store.All()}
}

// Save commits any pending mutations and writes the forest in the
// stable wire format: seed, tree count, sample table, then each tree
// pre-order.
func (f *Forest) Save(w io.Writer) error {
	f.Commit()
	samples := f.store.All()
	ww := wire.NewWriter(w)
	ww.Int64(f.seed).Newline()
	ww.Int(len(f.trees)).Newline()
	ww.Int(len(samples)).Newline()

	sampleIndex := make(map[string]int, len(samples))
	for i, s := range samples {
		sampleIndex[s.SUID] = i
		codes := sortedCodeKeys(s)
		ww.Int(i).String(s.SUID).Float(s.Y).Int(len(codes))
		for _, code := range codes {
			ww.Int(code).Float(s.XCodes[code])
		}
		ww.Newline()
	}
	for _, root := range f.trees {
		if err := tree.EncodeNode(ww, root, sampleIndex); err != nil {
			return err
		}
	}
	return ww.Flush()
}

func sortedCodeKeys(s *sample.Sample) []int {
	keys := make([]int, 0, len(s.XCodes))
	for code := range s.XCodes {
		keys = append(keys, code)
	}
	sort.Ints(keys)
	return keys
}

// Load reads a forest previously written by Save.
func Load(r io.Reader) (*Forest, error) {
	rr := wire.NewReader(r)
	seed, err := rr.Int64()
	if err != nil {
		return nil, fmt.Errorf("forest: load: reading seed: %w", err)
	}
	nTrees, err := rr.Int()
	if err != nil {
		return nil, fmt.Errorf("forest: load: reading tree count: %w", err)
	}
	nSamples, err := rr.Int()
	if err != nil {
		return nil, fmt.Errorf("forest: load: reading sample count: %w", err)
	}

	samples := make([]*sample.Sample, nSamples)
	for i := 0; i < nSamples; i++ {
		tag, err := rr.Int()
		if err != nil {
			return nil, fmt.Errorf("forest: load: sample %d: reading tag: %w", i, err)
		}
		suid, err := rr.String()
		if err != nil {
			return nil, fmt.Errorf("forest: load: sample %d: reading suid: %w", i, err)
		}
		y, err := rr.Float()
		if err != nil {
			return nil, fmt.Errorf("forest: load: sample %d: reading y: %w", i, err)
		}
		nCodes, err := rr.Int()
		if err != nil {
			return nil, fmt.Errorf("forest: load: sample %d: reading code count: %w", i, err)
		}
		codes := make(map[int]float64, nCodes)
		for j := 0; j < nCodes; j++ {
			code, err := rr.Int()
			if err != nil {
				return nil, fmt.Errorf("forest: load: sample %d: code %d: reading code: %w", i, j, err)
			}
			v, err := rr.Float()
			if err != nil {
				return nil, fmt.Errorf("forest: load: sample %d: code %d: reading value: %w", i, j, err)
			}
			codes[code] = v
		}
		if tag < 0 || tag >= nSamples {
			return nil, fmt.Errorf("forest: load: sample %d: tag %d out of range", i, tag)
		}
		samples[tag] = &sample.Sample{SUID: suid, Y: y, XCodes: codes}
	}

	trees := make([]tree.Node, nTrees)
	for i := 0; i < nTrees; i++ {
		node, err := tree.DecodeNode(rr, samples)
		if err != nil {
			return nil, fmt.Errorf("forest: load: tree %d: %w", i, err)
		}
		trees[i] = node
	}

	store := sample.NewStore()
	for _, s := range samples {
		if _, err := store.Add(s); err != nil {
			return nil, fmt.Errorf("forest: load: %w", err)
		}
	}
	store.Commit()

	return &Forest{store: store, trees: trees, seed: seed, state: tree.NewState(seed)}, nil
}
