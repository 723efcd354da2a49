package review

import "github.com/dshills/cppscore/internal/cppstd"

// Rule is one independent heuristic check. Rules are built by the catalog
// package from declarative data and are safe to share between goroutines.
type Rule struct {
	ID       string
	Severity Severity
	Penalty  int
	Icon     string
	Text     string

	// CompilerNotes extends Text when the target uses the given compiler.
	CompilerNotes map[cppstd.Compiler]string

	// Exclusive names a group of rules of which at most one fires per
	// evaluation; the first match in catalog order wins.
	Exclusive string

	Match func(Target) bool
}

// Issue builds the issue a rule reports for the target.
func (r Rule) Issue(t Target) Issue {
	text := r.Text
	if note, ok := r.CompilerNotes[t.Compiler]; ok {
		text += note
	}
	return Issue{
		Icon:     r.Icon,
		Text:     text,
		Severity: r.Severity,
		Rule:     r.ID,
	}
}
