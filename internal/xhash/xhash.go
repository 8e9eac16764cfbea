// Package xhash provides the MurmurHash3_x86_32 seeded hashing the
// tree and forest packages use for deterministic feature ranking and
// sample-to-tree routing. It exists because neither concern tolerates
// Go's unordered maps or an unseeded hash: both need a fixed,
// reproducible hash family so ranking and routing stay stable across
// runs and across saved/loaded forests.
package xhash

import (
	"strconv"

	"github.com/spaolacci/murmur3"
)

// seed is fixed across the codebase: changing it would silently
// reshuffle every existing tree's feature ranking and routing.
const seed = 42

// CodeRank ranks a feature code within a node for table-eviction
// purposes. It must be stable for the node's lifetime, so callers
// always pass the node's own immutable id.
func CodeRank(code int, nodeID uint64) uint32 {
	buf := strconv.Itoa(code) + strconv.FormatUint(nodeID, 10)
	return murmur3.Sum32WithSeed([]byte(buf), seed)
}

// RouteToTree reports whether suid is assigned to the tree at
// treeIndex under the forest's 2-of-3 deterministic sampling scheme.
func RouteToTree(treeIndex int, suid string) bool {
	buf := strconv.Itoa(treeIndex) + suid
	return murmur3.Sum32WithSeed([]byte(buf), seed)%3 < 2
}
