package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/cppscore/internal/config"
	"github.com/dshills/cppscore/internal/cppstd"
	"github.com/dshills/cppscore/internal/render"
	"github.com/dshills/cppscore/internal/review"
	"github.com/dshills/cppscore/internal/source"
)

type checkFlags struct {
	configPath  string
	overrides   map[string]string
	out         string
	minSeverity string
	verbose     bool

	stdout io.Writer
	stderr io.Writer
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Score a C++ snippet (reads stdin when file is omitted or \"-\")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := source.Stdin
			if len(args) == 1 {
				path = args[0]
			}
			f.configPath = configPath(cmd)
			f.overrides = changedOverrides(cmd, map[string]string{
				"std":        "std",
				"compiler":   "compiler",
				"format":     "format",
				"fail-below": "failBelow",
				"rules":      "rulesFile",
			})
			return runCheck(path, f)
		},
	}

	flags := cmd.Flags()
	flags.String("std", "c++17", "C++ standard: c++98, c++11, c++14, c++17, c++20 or c++23")
	flags.String("compiler", "gcc", "Compiler: gcc, clang or msvc")
	flags.String("format", "text", "Output format: text, json or md")
	flags.Int("fail-below", 0, "Exit 2 when the score is below this value (0 disables)")
	flags.String("rules", "", "Rule catalog YAML file (default: builtin catalog)")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.minSeverity, "min-severity", "low", "Minimum severity to report: low, medium or high")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runCheck(path string, f *checkFlags) error {
	stdout, stderr := f.stdout, f.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := log.New(stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	// 1. Resolve configuration
	cfg, err := config.Load(f.configPath, f.overrides)
	if err != nil {
		return exitError(3, "invalid configuration: %v", err)
	}
	verbose("Standard %s, compiler %s", cfg.Std, cfg.Compiler)
	if !cppstd.Compiler(cfg.Compiler).Known() {
		verbose("Warning: compiler %q has no dedicated rules", cfg.Compiler)
	}

	minRank, err := severityThresholdRank(f.minSeverity)
	if err != nil {
		return exitError(3, "%v", err)
	}

	// 2. Load snippet
	verbose("Loading snippet: %s", path)
	snip, err := source.Load(path)
	if err != nil {
		return exitError(3, "failed to load snippet: %v", err)
	}
	verbose("Read %d lines (%s)", len(snip.Lines), snip.Hash)

	// 3. Load rules
	engine, catalogName, err := loadEngine(cfg.RulesFile)
	if err != nil {
		return exitError(3, "failed to load rules: %v", err)
	}
	verbose("Using catalog %q with %d rules", catalogName, len(engine.Rules()))

	// 4. Evaluate
	res, err := engine.Evaluate(snip.Raw, cfg.Std, cfg.Compiler)
	if err != nil {
		if errors.Is(err, cppstd.ErrInvalidVersion) {
			return exitError(3, "%v", err)
		}
		return err
	}
	verbose("Score %d with %d issues", res.Score, len(res.Issues))

	// 5. Build report
	issues := filterBySeverity(res.Issues, minRank)
	std, _ := cppstd.ParseVersion(cfg.Std)
	standards := standardBadges(std)
	rep := review.Report{
		Tool:    "cppscore",
		Version: version,
		Input: review.Input{
			File:      displayName(snip.FilePath),
			Hash:      snip.Hash,
			Standard:  cfg.Std,
			Standards: standards,
			Compiler:  cfg.Compiler,
			Catalog:   catalogName,
		},
		Summary: review.ComputeSummary(issues, res.Score),
		Issues:  issues,
	}

	// 6. Output
	var output string
	switch cfg.Format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(&rep)
	case "text":
		output = render.Text(&rep)
	default:
		return exitError(3, "unknown format: %s", cfg.Format)
	}

	if f.out != "" {
		verbose("Writing output to %s", f.out)
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	// 7. Exit code based on --fail-below
	if cfg.FailBelow > 0 && res.Score < cfg.FailBelow {
		return exitError(2, "score %d is below threshold %d", res.Score, cfg.FailBelow)
	}

	return nil
}

// standardBadges lists the standards from C++11 up to std. C++98 never gets
// a badge, so a c++98 target reports none.
func standardBadges(std cppstd.Version) []string {
	badges := []string{}
	for _, v := range cppstd.Through(std) {
		if v.AtLeast(cppstd.CXX11) {
			badges = append(badges, v.String())
		}
	}
	return badges
}

func displayName(path string) string {
	if path == "" || strings.HasPrefix(path, "<") {
		return path
	}
	return filepath.Base(path)
}

// filterBySeverity drops issues ranked below minRank. The good issue is
// always kept so a report is never empty.
func filterBySeverity(issues []review.Issue, minRank int) []review.Issue {
	result := []review.Issue{}
	for _, iss := range issues {
		if iss.Severity == review.SeverityGood || iss.Severity.Rank() >= minRank {
			result = append(result, iss)
		}
	}
	return result
}

func severityThresholdRank(threshold string) (int, error) {
	switch strings.ToLower(threshold) {
	case "", "low":
		return review.SeverityLow.Rank(), nil
	case "medium":
		return review.SeverityMedium.Rank(), nil
	case "high":
		return review.SeverityHigh.Rank(), nil
	default:
		return 0, fmt.Errorf("unrecognized --min-severity value %q: use low, medium or high", threshold)
	}
}
