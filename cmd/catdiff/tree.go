package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func runTree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: tree takes <left> <right>, got %d args", cli.ErrUsage, len(args))
	}
	sess, err := loadSession(cfg.MainConfig, cc, args[0], args[1])
	if err != nil {
		return err
	}
	r := newRenderer(cc.Out, cfg.useColor(cc.Out), false)
	r.tree(sess.Tree(), 0)
	return nil
}
