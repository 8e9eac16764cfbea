package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCodesParsesDictionary(t *testing.T) {
	doc := []byte("codes:\n  1: age_over_40\n  2: has_prior_claim\n")
	codes, err := ReadCodes(doc)
	require.NoError(t, err)
	assert.Equal(t, "age_over_40", codes.NameFor(1))
	assert.Equal(t, "has_prior_claim", codes.NameFor(2))
}

func TestReadCodesRequiresCodesProperty(t *testing.T) {
	_, err := ReadCodes([]byte("other: 1\n"))
	assert.Error(t, err)
}

func TestNameForFallsBackToDecimalString(t *testing.T) {
	codes := Codes{1: "age_over_40"}
	assert.Equal(t, "99", codes.NameFor(99))
}
