package compare

import (
	"github.com/locforge/catdiff/debug"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
)

// Record is one comparison unit of a document pair. A Missing* record
// carries only the present side's value; its path never reappears in a
// deeper record.
type Record struct {
	Path   string   `json:"path"`
	Status Status   `json:"status"`
	Left   *ir.Node `json:"left,omitempty"`
	Right  *ir.Node `json:"right,omitempty"`
}

// Compare walks left and right in lock-step and returns one record per
// comparison unit, depth-first. At each level it visits left's keys in
// document order, then keys only right has. A key holding objects on
// both sides is not itself a unit; only its descendants are. A key
// absent on one side is one unit covering its whole subtree. A nil or
// non-object side is an empty object.
//
// Records alias the input documents; they do not copy values.
func Compare(left, right *ir.Node) []Record {
	recs := walk(left, right, "", nil)
	if debug.Compare() {
		debug.Logf("compare: %d records\n", len(recs))
	}
	return recs
}

func walk(left, right *ir.Node, prefix string, recs []Record) []Record {
	lKeys, lVals := entries(left)
	rKeys, rVals := entries(right)
	rIndex := make(map[string]int, len(rKeys))
	for i, k := range rKeys {
		rIndex[k] = i
	}
	inLeft := make(map[string]bool, len(lKeys))
	for i, k := range lKeys {
		inLeft[k] = true
		path := keypath.Join(prefix, k)
		lv := lVals[i]
		ri, ok := rIndex[k]
		if !ok {
			recs = append(recs, Record{Path: path, Status: MissingRight, Left: lv})
			continue
		}
		rv := rVals[ri]
		if lv.Type.IsContainer() && rv.Type.IsContainer() {
			recs = walk(lv, rv, path, recs)
			continue
		}
		recs = append(recs, Record{Path: path, Status: Classify(lv, rv), Left: lv, Right: rv})
	}
	for i, k := range rKeys {
		if inLeft[k] {
			continue
		}
		recs = append(recs, Record{Path: keypath.Join(prefix, k), Status: MissingLeft, Right: rVals[i]})
	}
	return recs
}

// entries treats nil and non-objects as empty objects.
func entries(n *ir.Node) ([]string, []*ir.Node) {
	if n == nil || !n.Type.IsContainer() {
		return nil, nil
	}
	return n.Keys, n.Values
}

// Classify applies canonical equality to a key present on both sides.
func Classify(left, right *ir.Node) Status {
	if ir.Equal(left, right) {
		return Identical
	}
	return Different
}
