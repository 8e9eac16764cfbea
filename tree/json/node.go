// Package json renders a tree.Node as the nested-array JSON format
// the forest's AsJSON output uses: a leaf is its value, an internal
// node is [code, negative, positive].
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/irforest/tree"
)

// WriteNode writes node's JSON representation to w.
func WriteNode(w io.Writer, node tree.Node) error {
	v, err := Value(node)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(v)
}

// Value returns node's JSON-marshalable representation, for callers
// (such as the forest, encoding several trees into one array) that
// need to compose it before marshaling.
func Value(node tree.Node) (interface{}, error) {
	switch n := node.(type) {
	case *tree.Leaf:
		return n.Value, nil
	case *tree.Internal:
		neg, err := Value(n.Negative)
		if err != nil {
			return nil, err
		}
		pos, err := Value(n.Positive)
		if err != nil {
			return nil, err
		}
		return []interface{}{n.Code, neg, pos}, nil
	default:
		return nil, fmt.Errorf("tree/json: unknown node type %T", node)
	}
}
