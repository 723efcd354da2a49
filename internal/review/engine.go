package review

import (
	"fmt"
	"maps"

	"github.com/dshills/cppscore/internal/cppstd"
)

const (
	goodIcon = "fa-regular fa-thumbs-up"
	goodText = "Code looks robust and follows common best practices"
)

// GoodIssue is the synthetic issue reported when no rule fires.
func GoodIssue() Issue {
	return Issue{Icon: goodIcon, Text: goodText, Severity: SeverityGood}
}

// Engine evaluates an ordered rule list against snippets.
// An Engine holds no mutable state and may be used concurrently.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine that applies rules in the given order.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: cloneRules(rules)}
}

// Rules returns a copy of the engine's rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return cloneRules(e.rules)
}

func cloneRules(rules []Rule) []Rule {
	r := make([]Rule, len(rules))
	for i, rule := range rules {
		rule.CompilerNotes = maps.Clone(rule.CompilerNotes)
		r[i] = rule
	}
	return r
}

// Evaluate scores code for the given standard and compiler tags.
// The version must be one of the known cppstd tags; anything else returns an
// error wrapping cppstd.ErrInvalidVersion. The compiler is free-form.
func (e *Engine) Evaluate(code, version, compiler string) (Result, error) {
	v, err := cppstd.ParseVersion(version)
	if err != nil {
		return Result{}, fmt.Errorf("review.Evaluate: %w", err)
	}
	return e.EvaluateTarget(Target{Code: code, Version: v, Compiler: cppstd.Compiler(compiler)})
}

// EvaluateTarget runs every rule against t. A version outside the known
// standards returns an error wrapping cppstd.ErrInvalidVersion.
func (e *Engine) EvaluateTarget(t Target) (Result, error) {
	if !t.Version.Valid() {
		return Result{}, fmt.Errorf("review.EvaluateTarget: %w: %s", cppstd.ErrInvalidVersion, t.Version)
	}

	score := StartScore
	var issues []Issue
	fired := make(map[string]bool)

	for _, r := range e.rules {
		if r.Exclusive != "" && fired[r.Exclusive] {
			continue
		}
		if !r.Match(t) {
			continue
		}
		if r.Exclusive != "" {
			fired[r.Exclusive] = true
		}
		issues = append(issues, r.Issue(t))
		score -= r.Penalty
	}

	score = ClampScore(score)

	if len(issues) == 0 {
		issues = append(issues, GoodIssue())
	}
	SortIssues(issues)

	return Result{Issues: issues, Score: score}, nil
}
