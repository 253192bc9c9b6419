package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/locforge/catdiff/ir"
)

// parseYAML decodes with ordered maps so object key order survives the
// trip, matching what the JSON path preserves.
func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	n, err := fromYAMLValue(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return n, nil
}

func fromYAMLValue(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		n := ir.Object()
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			child, err := fromYAMLValue(item.Value)
			if err != nil {
				return nil, err
			}
			n.Set(key, child)
		}
		return n, nil
	case []any:
		vals := make([]*ir.Node, 0, len(x))
		for _, e := range x {
			child, err := fromYAMLValue(e)
			if err != nil {
				return nil, err
			}
			vals = append(vals, child)
		}
		return ir.FromSlice(vals), nil
	default:
		return ir.FromAny(v)
	}
}
