package encode

import (
	"github.com/goccy/go-yaml"

	"github.com/locforge/catdiff/ir"
)

func encodeYAML(node *ir.Node, es *EncState) ([]byte, error) {
	return yaml.MarshalWithOptions(toYAMLValue(node, es), yaml.Indent(es.indent))
}

// toYAMLValue projects an ir tree onto goccy's ordered types so object
// layout survives marshalling.
func toYAMLValue(n *ir.Node, es *EncState) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case ir.ObjectType:
		keys, vals := es.entries(n)
		ms := make(yaml.MapSlice, 0, len(keys))
		for i := range keys {
			ms = append(ms, yaml.MapItem{Key: keys[i], Value: toYAMLValue(vals[i], es)})
		}
		return ms
	case ir.ArrayType:
		out := make([]any, 0, len(n.Values))
		for _, v := range n.Values {
			out = append(out, toYAMLValue(v, es))
		}
		return out
	default:
		return ir.ToAny(n)
	}
}
