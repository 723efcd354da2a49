package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/cppscore/internal/config"
	"github.com/dshills/cppscore/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(cmd), changedOverrides(cmd, map[string]string{
				"addr":         "server.addr",
				"static":       "server.staticDir",
				"allow-origin": "server.allowOrigin",
				"std":          "std",
				"compiler":     "compiler",
				"rules":        "rulesFile",
			}))
			if err != nil {
				return exitError(3, "invalid configuration: %v", err)
			}

			logger := log.New(os.Stderr, "cppscore: ", log.LstdFlags)
			engine, name, err := loadEngine(cfg.RulesFile)
			if err != nil {
				return exitError(3, "failed to load rules: %v", err)
			}
			logger.Printf("catalog %q loaded with %d rules", name, len(engine.Rules()))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(engine, cfg, logger).ListenAndServe(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":5000", "Listen address")
	flags.String("static", "", "Directory served at / (index.html for the web front-end)")
	flags.String("allow-origin", "*", "Access-Control-Allow-Origin value")
	flags.String("std", "c++17", "Default C++ standard for requests that omit one")
	flags.String("compiler", "gcc", "Default compiler for requests that omit one")
	flags.String("rules", "", "Rule catalog YAML file (default: builtin catalog)")
	return cmd
}
