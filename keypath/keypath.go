// Package keypath encodes object key chains as dotted strings and
// resolves them against ir trees.
//
// A path addresses object keys only. Array elements have no path:
// arrays are atomic values, so a path stops at them the same way it
// stops at any other leaf.
//
// Key segments containing "." are not representable. Catalog keys are
// sanitized upstream; the codec does not escape.
package keypath

import (
	"strings"

	"github.com/locforge/catdiff/ir"
)

const sep = "."

// Encode joins segments with dots. Empty segments are dropped.
func Encode(segments []string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}
	nonEmpty := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, sep)
}

// Join appends a segment to an encoded path.
func Join(path, segment string) string {
	if path == "" {
		return segment
	}
	if segment == "" {
		return path
	}
	return path + sep + segment
}

// Decode splits a dotted path into segments. Empty segments are
// dropped, so "a..b" decodes the same as "a.b".
func Decode(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, sep)
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	if len(segs) == 0 {
		return nil
	}
	return segs
}

// Read resolves path against doc and returns the addressed value, or
// nil when any intermediate is not an object or a key is missing. The
// empty path resolves to nil, never to doc itself.
func Read(doc *ir.Node, path string) *ir.Node {
	segs := Decode(path)
	if len(segs) == 0 {
		return nil
	}
	n := doc
	for _, seg := range segs {
		if n == nil || !n.Type.IsContainer() {
			return nil
		}
		n = n.Get(seg)
	}
	return n
}

// Write sets the value at path in doc, mutating doc in place. Missing
// intermediates are created as empty objects; a non-object intermediate
// is overwritten by one, discarding its previous value. The final
// segment is always replaced. The empty path is a no-op.
func Write(doc *ir.Node, path string, value *ir.Node) {
	segs := Decode(path)
	if doc == nil || len(segs) == 0 {
		return
	}
	n := doc
	for _, seg := range segs[:len(segs)-1] {
		makeObject(n)
		child := n.Get(seg)
		if child == nil || !child.Type.IsContainer() {
			child = ir.Object()
			n.Set(seg, child)
		}
		n = child
	}
	makeObject(n)
	n.Set(segs[len(segs)-1], value)
}

// makeObject turns n into an empty object in place unless it already
// is one.
func makeObject(n *ir.Node) {
	if n.Type.IsContainer() {
		return
	}
	*n = ir.Node{Type: ir.ObjectType}
}
