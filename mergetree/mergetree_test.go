package mergetree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/ir"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	if s == "" {
		return nil
	}
	n, err := ir.DecodeJSON([]byte(s))
	if err != nil {
		t.Fatalf("DecodeJSON(%q): %v", s, err)
	}
	return n
}

func paths(nodes []*Node) []string {
	var out []string
	Walk(nodes, func(n *Node) { out = append(out, n.Path) })
	return out
}

func find(t *testing.T, nodes []*Node, path string) *Node {
	t.Helper()
	var found *Node
	Walk(nodes, func(n *Node) {
		if n.Path == path {
			found = n
		}
	})
	if found == nil {
		t.Fatalf("no node at %q (have %v)", path, paths(nodes))
	}
	return found
}

func TestMerge_SortedKeyUnion(t *testing.T) {
	left := mustParse(t, `{"zebra":1,"alpha":2}`)
	right := mustParse(t, `{"mid":3,"alpha":2}`)
	tree := Merge(left, right)
	if d := cmp.Diff([]string{"alpha", "mid", "zebra"}, paths(tree)); d != "" {
		t.Errorf("row order (-want +got):\n%s", d)
	}
}

func TestMerge_ExposesMissingSubtree(t *testing.T) {
	left := mustParse(t, `{"a":1}`)
	right := mustParse(t, `{"a":1,"menu":{"file":{"open":"Open","close":"Close"}}}`)

	// The flat engine collapses the missing branch into one record.
	recs := compare.Compare(left, right)
	var recPaths []string
	for _, r := range recs {
		recPaths = append(recPaths, r.Path)
	}
	if d := cmp.Diff([]string{"a", "menu"}, recPaths); d != "" {
		t.Fatalf("compare records (-want +got):\n%s", d)
	}

	// The tree keeps descending into it.
	tree := Merge(left, right)
	want := []string{"a", "menu", "menu.file", "menu.file.close", "menu.file.open"}
	if d := cmp.Diff(want, paths(tree)); d != "" {
		t.Errorf("tree rows (-want +got):\n%s", d)
	}
	for _, p := range []string{"menu", "menu.file", "menu.file.open"} {
		n := find(t, tree, p)
		if n.HasLeft || !n.HasRight {
			t.Errorf("%s: hasLeft=%v hasRight=%v", p, n.HasLeft, n.HasRight)
		}
		if n.Status != compare.MissingLeft {
			t.Errorf("%s: status = %v, want missing-left", p, n.Status)
		}
	}
}

func TestMerge_ContainerStatusIsDeepEquality(t *testing.T) {
	left := mustParse(t, `{"a":{"b":"x"},"c":{"d":1}}`)
	right := mustParse(t, `{"a":{"b":"y"},"c":{"d":1}}`)
	tree := Merge(left, right)

	a := find(t, tree, "a")
	if !a.IsContainer || a.Status != compare.Different {
		t.Errorf("a: isContainer=%v status=%v", a.IsContainer, a.Status)
	}
	c := find(t, tree, "c")
	if !c.IsContainer || c.Status != compare.Identical {
		t.Errorf("c: isContainer=%v status=%v", c.IsContainer, c.Status)
	}
}

func TestMerge_EmptyObjectVersusLeaf(t *testing.T) {
	left := mustParse(t, `{"a":{}}`)
	right := mustParse(t, `{"a":"flat"}`)
	tree := Merge(left, right)

	a := find(t, tree, "a")
	if !a.IsContainer {
		t.Error("a: isContainer = false, one side is an object")
	}
	if a.Status != compare.Different {
		t.Errorf("a: status = %v, want different", a.Status)
	}
	if len(a.Children) != 0 {
		t.Errorf("a: children = %v, the object side is empty", paths(a.Children))
	}
}

func TestMerge_LeafRowsHaveNoChildren(t *testing.T) {
	left := mustParse(t, `{"arr":[1,2],"s":"x"}`)
	right := mustParse(t, `{"arr":[3],"s":"x"}`)
	tree := Merge(left, right)
	for _, p := range []string{"arr", "s"} {
		n := find(t, tree, p)
		if n.IsContainer || n.Children != nil {
			t.Errorf("%s: isContainer=%v children=%v", p, n.IsContainer, n.Children)
		}
	}
}

func TestMerge_NullIsPresent(t *testing.T) {
	left := mustParse(t, `{"a":null}`)
	right := mustParse(t, `{}`)
	tree := Merge(left, right)
	a := find(t, tree, "a")
	if !a.HasLeft || a.HasRight {
		t.Errorf("a: hasLeft=%v hasRight=%v, null is a value", a.HasLeft, a.HasRight)
	}
	if a.Status != compare.MissingRight {
		t.Errorf("a: status = %v", a.Status)
	}
}

func TestMerge_BothAbsent(t *testing.T) {
	if tree := Merge(nil, nil); len(tree) != 0 {
		t.Errorf("Merge(nil, nil) = %v", paths(tree))
	}
}

func TestMerge_RowsAliasInputs(t *testing.T) {
	left := mustParse(t, `{"a":{"b":1}}`)
	right := mustParse(t, `{"a":{"b":2}}`)
	tree := Merge(left, right)
	b := find(t, tree, "a.b")
	if b.Left != left.Get("a").Get("b") {
		t.Error("row copied the left value, want an alias")
	}
	if b.Right != right.Get("a").Get("b") {
		t.Error("row copied the right value, want an alias")
	}
}

func TestCountLeaves(t *testing.T) {
	left := mustParse(t, `{"a":{"b":1,"c":2},"d":3}`)
	right := mustParse(t, `{"a":{"b":1},"e":4}`)
	if got := CountLeaves(Merge(left, right)); got != 4 {
		t.Errorf("CountLeaves = %d, want 4", got)
	}
}
