package compare

import (
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
)

// JSONPatch returns an RFC 6902 patch document rewriting the left
// document into the right one. Identical records contribute no op.
// Record paths never nest, so the ops commute and the patch applies
// cleanly in any order.
func JSONPatch(recs []Record) *ir.Node {
	ops := make([]*ir.Node, 0, len(recs))
	for _, r := range recs {
		switch r.Status {
		case Different:
			ops = append(ops, patchOp("replace", r.Path, r.Right))
		case MissingLeft:
			ops = append(ops, patchOp("add", r.Path, r.Right))
		case MissingRight:
			ops = append(ops, patchOp("remove", r.Path, nil))
		}
	}
	return ir.FromSlice(ops)
}

func patchOp(op, path string, value *ir.Node) *ir.Node {
	n := ir.Object()
	n.Set("op", ir.FromString(op))
	n.Set("path", ir.FromString(Pointer(path)))
	if value != nil {
		n.Set("value", value.Clone())
	}
	return n
}

// Pointer converts a dotted key path to an RFC 6901 JSON pointer.
func Pointer(path string) string {
	segs := keypath.Decode(path)
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		b.WriteString(s)
	}
	return b.String()
}

// ApplyJSONPatch applies an RFC 6902 patch to doc and returns the
// result. doc is not modified.
func ApplyJSONPatch(doc, patch *ir.Node) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(ir.EncodeJSON(patch))
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	out, err := ops.Apply(ir.EncodeJSON(doc))
	if err != nil {
		return nil, err
	}
	return ir.DecodeJSON(out)
}
