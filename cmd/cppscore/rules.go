package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/cppscore/internal/catalog"
	"github.com/dshills/cppscore/internal/config"
)

func newRulesCmd() *cobra.Command {
	var builtins bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules of the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if builtins {
				return listBuiltinCatalogs(os.Stdout)
			}
			cfg, err := config.Load(configPath(cmd), changedOverrides(cmd, map[string]string{"rules": "rulesFile"}))
			if err != nil {
				return exitError(3, "invalid configuration: %v", err)
			}
			return runRules(cfg.RulesFile, os.Stdout)
		},
	}
	cmd.Flags().String("rules", "", "Rule catalog YAML file (default: builtin catalog)")
	cmd.Flags().BoolVar(&builtins, "builtin", false, "List the names of the builtin catalogs instead")
	return cmd
}

func runRules(rulesFile string, w io.Writer) error {
	engine, name, err := loadEngine(rulesFile)
	if err != nil {
		return exitError(3, "failed to load rules: %v", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# catalog: %s\n", name)
	fmt.Fprintln(tw, "ID\tSEVERITY\tPENALTY\tTEXT")
	for _, r := range engine.Rules() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.Severity, r.Penalty, r.Text)
	}
	return tw.Flush()
}

func listBuiltinCatalogs(w io.Writer) error {
	names, err := catalog.List()
	if err != nil {
		return err
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
