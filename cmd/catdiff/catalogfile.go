package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/locforge/catdiff"
	"github.com/locforge/catdiff/catalog"
)

// getCatalogFile loads one side's document from a file path, "-" for
// stdin.
func getCatalogFile(cfg *MainConfig, cc *cli.Context, side catalog.Side, path string) (*catalog.Document, error) {
	opts := []catalog.LoadOption{}
	if f, ok := cfg.inFormat(); ok {
		opts = append(opts, catalog.WithFormat(f))
	}
	if path != "-" {
		return catalog.LoadFile(side, path, opts...)
	}
	d, err := io.ReadAll(cc.In)
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}
	return catalog.LoadBytes(side, d, append(opts, catalog.WithName("stdin"))...)
}

// loadSession builds a two-sided session from a pair of file paths.
func loadSession(cfg *MainConfig, cc *cli.Context, leftPath, rightPath string) (*catdiff.Session, error) {
	sess := catdiff.NewSession()
	paths := map[catalog.Side]string{
		catalog.Left:  leftPath,
		catalog.Right: rightPath,
	}
	for _, side := range catalog.Sides() {
		doc, err := getCatalogFile(cfg, cc, side, paths[side])
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", paths[side], err)
		}
		if err := sess.SetDocument(doc); err != nil {
			return nil, err
		}
	}
	return sess, nil
}
