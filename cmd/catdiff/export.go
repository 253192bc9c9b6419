package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/locforge/catdiff"
	"github.com/locforge/catdiff/catalog"
	"github.com/locforge/catdiff/encode"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/parse"
)

type editArg struct {
	path  string
	value *ir.Node
}

// setOpt records one -set path=value argument. Values parse as YAML,
// which covers JSON and bare scalars; anything unparseable is taken as
// a plain string.
func (cfg *ExportConfig) setOpt(_ *cli.Context, a string) (any, error) {
	path, val, ok := strings.Cut(a, "=")
	if !ok {
		return nil, fmt.Errorf("%w: argument %q expected path=value", cli.ErrUsage, a)
	}
	node, err := parse.ParseString(val, parse.ParseYAML())
	if err != nil {
		node = ir.FromString(val)
	}
	cfg.sets = append(cfg.sets, editArg{path: path, value: node})
	return 0, nil
}

func runExport(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: export takes one file, got %d args", cli.ErrUsage, len(args))
	}
	side, err := catalog.ParseSide(cfg.Side)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	doc, err := getCatalogFile(cfg.MainConfig, cc, side, args[0])
	if err != nil {
		return fmt.Errorf("error loading %s: %w", args[0], err)
	}
	sess := catdiff.NewSession()
	if err := sess.SetDocument(doc); err != nil {
		return err
	}
	for _, set := range cfg.sets {
		if err := sess.Edit(side, set.path, set.value); err != nil {
			return fmt.Errorf("error recording edit %s: %w", set.path, err)
		}
	}
	if cfg.MergePatch {
		patch, err := sess.MergePatch(side)
		if err != nil {
			return err
		}
		return encode.Encode(patch, cc.Out, cfg.encOpts(cc.Out)...)
	}
	return sess.Export(side, cc.Out, cfg.encOpts(cc.Out)...)
}
