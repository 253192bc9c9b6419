package parse

import (
	"errors"
	"fmt"

	"github.com/locforge/catdiff/debug"
	"github.com/locforge/catdiff/format"
	"github.com/locforge/catdiff/ir"
)

var ErrParse = errors.New("parse error")

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	var n *ir.Node
	var err error
	switch pOpts.format {
	case format.YAMLFormat:
		n, err = parseYAML(d)
	default:
		n, err = parseJSON(d)
	}
	if err != nil && debug.Parse() {
		debug.Logf("parse: %s input: %v\n", pOpts.format, err)
	}
	return n, err
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func parseJSON(d []byte) (*ir.Node, error) {
	n, err := ir.DecodeJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return n, nil
}
