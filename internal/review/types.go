// Package review defines the rule engine that scores C++ snippets and the
// types it produces.
package review

import "github.com/dshills/cppscore/internal/cppstd"

// Issue is a single flagged finding. Issues are values; the engine never
// mutates one after appending it.
type Issue struct {
	Icon     string   `json:"icon"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule,omitempty"`
}

// Result is the engine output for one snippet.
type Result struct {
	Issues []Issue `json:"issues"`
	Score  int     `json:"score"`
}

// Target is the input a rule inspects.
type Target struct {
	Code     string
	Version  cppstd.Version
	Compiler cppstd.Compiler
}

// Report wraps a result with the metadata the CLI emits.
type Report struct {
	Tool    string  `json:"tool"`
	Version string  `json:"version"`
	Input   Input   `json:"input"`
	Summary Summary `json:"summary"`
	Issues  []Issue `json:"issues"`
}

// Input describes the snippet and settings used for the analysis.
type Input struct {
	File      string   `json:"file"`
	Hash      string   `json:"hash"`
	Standard  string   `json:"standard"`
	Standards []string `json:"standards"`
	Compiler  string   `json:"compiler"`
	Catalog   string   `json:"catalog"`
}

// Summary holds the score and severity counts.
type Summary struct {
	Score       int `json:"score"`
	HighCount   int `json:"high_count"`
	MediumCount int `json:"medium_count"`
	LowCount    int `json:"low_count"`
}
