package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "catdiff").
		WithSynopsis("catdiff [opts] command [opts]").
		WithDescription("catdiff compares and reconciles key-value catalog documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return catdiffMain(cfg, cc, args)
		}).
		WithSubs(
			CompareCommand(cfg),
			TreeCommand(cfg),
			CountCommand(cfg),
			ExportCommand(cfg),
			ServeCommand(cfg))
}

func CompareCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompareConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Compare, "compare").
		WithAliases("c", "cmp").
		WithSynopsis("compare [opts] <left> <right>").
		WithDescription("compare two catalog documents key by key").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runCompare(cfg, cc, args)
		})
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Tree, "tree").
		WithAliases("t").
		WithSynopsis("tree <left> <right>").
		WithDescription("show two catalog documents as one reconciled tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return runTree(cfg, cc, args)
		})
}

func CountCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CountConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Count, "count").
		WithSynopsis("count [-limit n] [files]").
		WithDescription("count the leaf keys of catalog documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runCount(cfg, cc, args)
		})
}

func ExportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExportConfig{MainConfig: mainCfg, Side: "left"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "set",
		Description: "record an edit before export, repeatable",
		Type:        cli.NamedFuncOpt(cfg.setOpt, "(path=value)"),
	})
	return cli.NewCommandAt(&cfg.Export, "export").
		WithAliases("x", "ex").
		WithSynopsis("export [-set path=value]... <file>").
		WithDescription("render a catalog document with pending edits applied").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runExport(cfg, cc, args)
		})
}
