package ir

import (
	"slices"
)

// Node is one value in a catalog document. The Type tag decides which
// fields are meaningful:
//
//   - ObjectType: Keys[i] names Values[i]; key order is the document's
//     own order and is preserved through decode/encode.
//   - ArrayType: Values holds the elements, Keys is nil.
//   - StringType: String.
//   - BoolType: Bool.
//   - NumberType: Int64 if the literal is a 64-bit integer, else Float64
//     if it fits a float, else the raw literal in Number.
//   - NullType: no payload.
type Node struct {
	Type   Type
	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
	Number  string
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Type: ObjectType}
}

// FromMap builds an object with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Keys = make([]string, 0, len(m))
	for k := range m {
		res.Keys = append(res.Keys, k)
	}
	slices.Sort(res.Keys)
	res.Values = make([]*Node, len(res.Keys))
	for i, key := range res.Keys {
		res.Values[i] = m[key]
	}
	return res
}

type Pair struct {
	Key   string
	Value *Node
}

// FromPairs builds an object preserving the given order. A repeated key
// keeps its first position and takes the last value.
func FromPairs(pairs []Pair) *Node {
	res := &Node{Type: ObjectType}
	for _, p := range pairs {
		res.Set(p.Key, p.Value)
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	copy(res.Values, vs)
	return res
}

// IndexOf returns the position of key in an object node, or -1.
func (n *Node) IndexOf(key string) int {
	if n.Type != ObjectType {
		return -1
	}
	for i, k := range n.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Get returns the value for key in an object node, or nil when n is not
// an object or the key is absent.
func (n *Node) Get(key string) *Node {
	if i := n.IndexOf(key); i >= 0 {
		return n.Values[i]
	}
	return nil
}

// Set replaces the value for key, or appends the key when absent.
// The position of an existing key does not move.
func (n *Node) Set(key string, value *Node) {
	if i := n.IndexOf(key); i >= 0 {
		n.Values[i] = value
		return
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, value)
}

// ToMap projects an object node onto a map, dropping key order.
// Returns nil for non-objects.
func ToMap(n *Node) map[string]*Node {
	if n.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(n.Keys))
	for i, k := range n.Keys {
		res[k] = n.Values[i]
	}
	return res
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	dst.Number = n.Number
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Keys != nil {
		dst.Keys = make([]string, len(n.Keys))
		copy(dst.Keys, n.Keys)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Visit walks the node pre- and post-order. f is called with isPost false
// before children and true after; returning dive=false skips children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
