package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/locforge/catdiff/compare"
	"github.com/locforge/catdiff/encode"
)

func runCompare(cfg *CompareConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compare.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: compare takes <left> <right>, got %d args", cli.ErrUsage, len(args))
	}
	sess, err := loadSession(cfg.MainConfig, cc, args[0], args[1])
	if err != nil {
		return err
	}
	recs := sess.Compare()
	// the summary always covers the unfiltered records
	summary := compare.Summarize(recs)
	if cfg.Filter != "" {
		filter, err := compare.NewFilter(cfg.Filter)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
		if recs, err = filter.Apply(recs); err != nil {
			return err
		}
	}
	if cfg.Patch {
		if err := encode.Encode(compare.JSONPatch(recs), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
		return exitDiff(summary)
	}
	r := newRenderer(cc.Out, cfg.useColor(cc.Out), cfg.Inline)
	if !cfg.Summary {
		r.records(recs)
	}
	r.summary(summary)
	return exitDiff(summary)
}

// exitDiff maps a comparison outcome to the process exit code: 1 when
// the documents differ, 0 when they are in sync.
func exitDiff(s compare.Summary) error {
	if s.InSync() {
		return nil
	}
	return cli.ExitCodeErr(1)
}
