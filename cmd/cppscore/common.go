package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/cppscore/internal/catalog"
	"github.com/dshills/cppscore/internal/review"
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// changedOverrides maps explicitly set flags to config keys.
func changedOverrides(cmd *cobra.Command, keys map[string]string) map[string]string {
	overrides := make(map[string]string)
	for flag, key := range keys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	return overrides
}

func configPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("config")
	return p
}

// loadEngine builds an engine from a rules file, or from the builtin catalog
// when rulesFile is empty.
func loadEngine(rulesFile string) (*review.Engine, string, error) {
	rules, name, err := catalog.Load(rulesFile)
	if err != nil {
		return nil, "", err
	}
	return review.NewEngine(rules), name, nil
}
