package encode

import (
	"cmp"
	"io"
	"slices"

	"github.com/locforge/catdiff/format"
	"github.com/locforge/catdiff/ir"
)

type EncState struct {
	indent    int
	compact   bool
	keepOrder bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. Objects render with keys sorted unless
// EncodeKeepOrder is given; comparison ignores order, rendering wants a
// stable layout. Output always ends with a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var d []byte
	var err error
	switch es.format {
	case format.YAMLFormat:
		d, err = encodeYAML(node, es)
	default:
		d = appendValue(nil, node, es, 0)
	}
	if err != nil {
		return err
	}
	if len(d) == 0 || d[len(d)-1] != '\n' {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}

func appendValue(dst []byte, n *ir.Node, es *EncState, depth int) []byte {
	if n == nil {
		n = ir.Null()
	}
	switch n.Type {
	case ir.ObjectType:
		return appendObject(dst, n, es, depth)
	case ir.ArrayType:
		return appendArray(dst, n, es, depth)
	default:
		return append(dst, es.color(n.Type, ValueColor, string(ir.EncodeJSON(n)))...)
	}
}

func appendObject(dst []byte, n *ir.Node, es *EncState, depth int) []byte {
	if len(n.Keys) == 0 {
		return append(dst, "{}"...)
	}
	keys, vals := es.entries(n)
	dst = append(dst, '{')
	for i := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = es.appendBreak(dst, depth+1)
		key := string(ir.AppendJSONString(nil, keys[i]))
		dst = append(dst, es.color(ir.ObjectType, FieldColor, key)...)
		dst = append(dst, ':')
		if !es.compact {
			dst = append(dst, ' ')
		}
		dst = appendValue(dst, vals[i], es, depth+1)
	}
	dst = es.appendBreak(dst, depth)
	return append(dst, '}')
}

func appendArray(dst []byte, n *ir.Node, es *EncState, depth int) []byte {
	if len(n.Values) == 0 {
		return append(dst, "[]"...)
	}
	dst = append(dst, '[')
	for i, v := range n.Values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = es.appendBreak(dst, depth+1)
		dst = appendValue(dst, v, es, depth+1)
	}
	dst = es.appendBreak(dst, depth)
	return append(dst, ']')
}

func (es *EncState) appendBreak(dst []byte, depth int) []byte {
	if es.compact {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < depth*es.indent; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

// entries returns n's keys and values in render order.
func (es *EncState) entries(n *ir.Node) ([]string, []*ir.Node) {
	if es.keepOrder {
		return n.Keys, n.Values
	}
	idx := make([]int, len(n.Keys))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		return cmp.Compare(n.Keys[a], n.Keys[b])
	})
	keys := make([]string, len(idx))
	vals := make([]*ir.Node, len(idx))
	for i, j := range idx {
		keys[i] = n.Keys[j]
		vals[i] = n.Values[j]
	}
	return keys, vals
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}
