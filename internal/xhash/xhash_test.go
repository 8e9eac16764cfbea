package xhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeRankIsDeterministic(t *testing.T) {
	a := CodeRank(7, 42)
	b := CodeRank(7, 42)
	assert.Equal(t, a, b)
}

func TestCodeRankVariesWithInputs(t *testing.T) {
	assert.NotEqual(t, CodeRank(7, 42), CodeRank(8, 42), "different codes should (almost always) rank differently")
	assert.NotEqual(t, CodeRank(7, 42), CodeRank(7, 43), "the same code should rank differently at a different node")
}

func TestRouteToTreeIsDeterministic(t *testing.T) {
	a := RouteToTree(0, "suid-1")
	b := RouteToTree(0, "suid-1")
	assert.Equal(t, a, b)
}

func TestRouteToTreeTwoOfThreeAcceptanceRate(t *testing.T) {
	// Each sample lands on roughly 2 of 3 trees; across many samples
	// and 3 trees, about two thirds of (sample, tree) pairs accept.
	const nSamples = 3000
	const nTrees = 3
	accepted := 0
	for i := 0; i < nSamples; i++ {
		suid := "suid-" + string(rune('a'+(i%26))) + string(rune('0'+(i/26)%10)) + string(rune('A'+(i/260)%26))
		for tIdx := 0; tIdx < nTrees; tIdx++ {
			if RouteToTree(tIdx, suid) {
				accepted++
			}
		}
	}
	total := nSamples * nTrees
	ratio := float64(accepted) / float64(total)
	assert.InDelta(t, 2.0/3.0, ratio, 0.05)
}
