package compare

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/keypath"
)

// Filter selects records with a boolean expression. The environment
// exposes path, status, hasLeft, hasRight, left and right, plus the
// helpers depth(path) and segment(path, i).
//
//	status == "different" && depth(path) > 1
//	hasRight && !hasLeft && segment(path, 0) == "app"
type Filter struct {
	src string
	prg *vm.Program
}

func NewFilter(src string) (*Filter, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string { return f.src }

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("depth", func(params ...any) (any, error) {
			return len(keypath.Decode(params[0].(string))), nil
		},
			new(func(string) int)),
		expr.Function("segment", func(params ...any) (any, error) {
			segs := keypath.Decode(params[0].(string))
			i := params[1].(int)
			if i < 0 || i >= len(segs) {
				return "", nil
			}
			return segs[i], nil
		},
			new(func(string, int) string)),
		expr.Function("contains", func(params ...any) (any, error) {
			return strings.Contains(params[0].(string), params[1].(string)), nil
		},
			new(func(string, string) bool)),
	}
}

func (f *Filter) Match(r Record) (bool, error) {
	env := map[string]any{
		"path":     r.Path,
		"status":   r.Status.String(),
		"hasLeft":  r.Left != nil,
		"hasRight": r.Right != nil,
		"left":     ir.ToAny(r.Left),
		"right":    ir.ToAny(r.Right),
	}
	res, err := expr.Run(f.prg, env)
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, not bool", f.src, res)
	}
	return b, nil
}

// Apply returns the records f selects, in their original order.
func (f *Filter) Apply(recs []Record) ([]Record, error) {
	res := make([]Record, 0, len(recs))
	for _, r := range recs {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, r)
		}
	}
	return res, nil
}
