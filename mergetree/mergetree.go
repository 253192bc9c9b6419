// Package mergetree reconciles a document pair into one tree for
// dual-column display.
//
// Where package compare collapses a one-sided subtree into a single
// record, the tree keeps descending: whichever side has an object
// contributes its whole subtree, so a missing branch stays browsable
// key by key. The two walks answer different questions and deliberately
// disagree about missing branches.
//
// Rows sort by key at every level. Row order is therefore independent
// of either document's key order, unlike compare's record order.
package mergetree

import (
	"cmp"
	"slices"

	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/debug"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
)

// Node is one row of the reconciled tree. For container rows the
// status is informational only: it reports deep equality of the two
// subtrees, and renderers badge leaf rows, not container rows.
type Node struct {
	Key         string         `json:"key"`
	Path        string         `json:"path"`
	Left        *ir.Node       `json:"left,omitempty"`
	Right       *ir.Node       `json:"right,omitempty"`
	HasLeft     bool           `json:"hasLeft"`
	HasRight    bool           `json:"hasRight"`
	Status      compare.Status `json:"status"`
	IsContainer bool           `json:"isContainer"`
	Children    []*Node        `json:"children,omitempty"`
}

// Merge builds the reconciled tree of a document pair. Nodes alias the
// input documents; they do not copy values. A nil or non-object side
// is an empty object.
func Merge(left, right *ir.Node) []*Node {
	nodes := merge(left, right, "")
	if debug.Merge() {
		debug.Logf("merge: %d roots\n", len(nodes))
	}
	return nodes
}

func merge(left, right *ir.Node, prefix string) []*Node {
	keys := keyUnion(left, right)
	nodes := make([]*Node, 0, len(keys))
	for _, k := range keys {
		lv, hasL := child(left, k)
		rv, hasR := child(right, k)
		n := &Node{
			Key:         k,
			Path:        keypath.Join(prefix, k),
			Left:        lv,
			Right:       rv,
			HasLeft:     hasL,
			HasRight:    hasR,
			IsContainer: isContainer(lv) || isContainer(rv),
		}
		switch {
		case !hasL:
			n.Status = compare.MissingLeft
		case !hasR:
			n.Status = compare.MissingRight
		default:
			n.Status = compare.Classify(lv, rv)
		}
		if n.IsContainer {
			n.Children = merge(asContainer(lv), asContainer(rv), n.Path)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func keyUnion(left, right *ir.Node) []string {
	keys := []string{}
	seen := map[string]bool{}
	for _, n := range []*ir.Node{left, right} {
		if n == nil || !n.Type.IsContainer() {
			continue
		}
		for _, k := range n.Keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, cmp.Compare)
	return keys
}

func child(n *ir.Node, key string) (*ir.Node, bool) {
	if n == nil || !n.Type.IsContainer() {
		return nil, false
	}
	if i := n.IndexOf(key); i >= 0 {
		return n.Values[i], true
	}
	return nil, false
}

func isContainer(n *ir.Node) bool {
	return n != nil && n.Type.IsContainer()
}

func asContainer(n *ir.Node) *ir.Node {
	if isContainer(n) {
		return n
	}
	return nil
}

// Walk visits every node of a tree depth-first, parents before
// children.
func Walk(nodes []*Node, f func(*Node)) {
	for _, n := range nodes {
		f(n)
		Walk(n.Children, f)
	}
}

// CountLeaves returns the number of leaf rows in a tree.
func CountLeaves(nodes []*Node) int {
	total := 0
	Walk(nodes, func(n *Node) {
		if !n.IsContainer {
			total++
		}
	})
	return total
}
