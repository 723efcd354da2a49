package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/cppscore/internal/simulate"
	"github.com/dshills/cppscore/internal/source"
)

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [file]",
		Short: "Print the output a snippet would roughly produce via cout and printf",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := source.Stdin
			if len(args) == 1 {
				path = args[0]
			}
			return runSimulate(path, os.Stdout)
		},
	}
}

func runSimulate(path string, w io.Writer) error {
	snip, err := source.Load(path)
	if err != nil {
		return exitError(3, "failed to load snippet: %v", err)
	}
	out := simulate.Output(snip.Raw)
	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
