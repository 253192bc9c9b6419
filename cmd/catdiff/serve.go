package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/locforge/catdiff/system/compared/server"
)

type ServeConfig struct {
	*MainConfig

	Serve      *cli.Command
	ConfigFile string `cli:"name=config desc='configuration file (yaml or json)'"`
	Addr       string `cli:"name=addr desc='TCP listen address default localhost:9311'"`
	Stdio      bool   `cli:"name=stdio desc='serve a single session on stdin/stdout'"`
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-addr <addr>] [-config <file>] [-stdio]").
		WithDescription("run the compared session server").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runServe(cfg, cc, args)
		})
}

func runServe(cfg *ServeConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}

	// Load configuration
	var serverConfig *server.Config
	if cfg.ConfigFile != "" {
		serverConfig, err = server.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := serverConfig.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	// Create server
	srv := server.New(&server.Spec{
		Config: serverConfig,
	})

	// Stdio sessions own stdout, so no gops and no banner here.
	if cfg.Stdio {
		return srv.ServeStdio(context.Background(), os.Stdin, os.Stdout)
	}

	// Start gops agent for debugging
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}

	addr := cfg.Addr
	if addr == "" {
		addr = srv.Spec.Config.Addr
	}
	if addr == "" {
		addr = server.DefaultConfig().Addr
	}

	// Start TCP listener
	if err := srv.StartTCP(addr); err != nil {
		return fmt.Errorf("failed to start TCP listener: %w", err)
	}
	fmt.Fprintf(cc.Out, "compared listening on %s\n", srv.TCPAddr())
	defer srv.StopTCP()

	// Block forever
	select {}
}
