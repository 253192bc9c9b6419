package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/locforge/catdiff/format"
	"github.com/locforge/catdiff/ir"
	"github.com/locforge/catdiff/parse"
)

// runCount counts leaf keys without catalog validation, so it also
// works as a probe on documents a session would reject.
func runCount(cfg *CountConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Count.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	over := 0
	for _, path := range args {
		n, err := countFile(cfg, cc, path)
		if err != nil {
			return err
		}
		verdict := ""
		if cfg.Limit > 0 && n > cfg.Limit {
			verdict = fmt.Sprintf(" (over limit %d)", cfg.Limit)
			over++
		}
		fmt.Fprintf(cc.Out, "%s: %d%s\n", path, n, verdict)
	}
	if over > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func countFile(cfg *CountConfig, cc *cli.Context, path string) (int, error) {
	var d []byte
	var err error
	popts := []parse.ParseOption{}
	if f, ok := cfg.inFormat(); ok {
		popts = append(popts, parse.ParseFormat(f))
	}
	if path == "-" {
		d, err = io.ReadAll(cc.In)
	} else {
		d, err = os.ReadFile(path)
		if len(popts) == 0 {
			if f, ok := format.DetectPath(path); ok {
				popts = append(popts, parse.ParseFormat(f))
			}
		}
	}
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", path, err)
	}
	root, err := parse.Parse(d, popts...)
	if err != nil {
		return 0, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return ir.CountKeys(root), nil
}
