package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "cppscore",
		Short:         "Score C++ snippets for common robustness pitfalls",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("config", "", "Config file path (default: $XDG_CONFIG_HOME/cppscore/config.yaml)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
