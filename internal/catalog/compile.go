package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/cppscore/internal/cppstd"
	"github.com/dshills/cppscore/internal/review"
)

// InvalidError reports every validation failure of a catalog.
type InvalidError struct {
	Name   string
	Errors []ValidationError
}

func (e *InvalidError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("catalog %q is invalid: %s", e.Name, strings.Join(msgs, "; "))
}

type predicate func(review.Target) bool

// Compile validates a catalog and turns it into review rules in document order.
func Compile(f *File) ([]review.Rule, error) {
	if errs := Validate(f); len(errs) > 0 {
		return nil, fmt.Errorf("catalog.Compile: %w", &InvalidError{Name: f.Name, Errors: errs})
	}

	rules := make([]review.Rule, 0, len(f.Rules))
	for _, spec := range f.Rules {
		preds := make([]predicate, 0, len(spec.When))
		for _, c := range spec.When {
			preds = append(preds, compileCondition(c))
		}

		var notes map[cppstd.Compiler]string
		if len(spec.CompilerNotes) > 0 {
			notes = make(map[cppstd.Compiler]string, len(spec.CompilerNotes))
			for c, n := range spec.CompilerNotes {
				notes[cppstd.Compiler(c)] = n
			}
		}

		rules = append(rules, review.Rule{
			ID:            spec.ID,
			Severity:      review.Severity(spec.Severity),
			Penalty:       spec.Penalty,
			Icon:          spec.Icon,
			Text:          spec.Text,
			CompilerNotes: notes,
			Exclusive:     spec.Exclusive,
			Match:         allOf(preds),
		})
	}
	return rules, nil
}

func allOf(preds []predicate) func(review.Target) bool {
	return func(t review.Target) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// compileCondition assumes c passed Validate.
func compileCondition(c Condition) predicate {
	switch {
	case c.Contains != "":
		s := c.Contains
		return func(t review.Target) bool { return strings.Contains(t.Code, s) }
	case c.Absent != "":
		s := c.Absent
		return func(t review.Target) bool { return !strings.Contains(t.Code, s) }
	case len(c.AnyOf) > 0:
		needles := append([]string(nil), c.AnyOf...)
		return func(t review.Target) bool {
			for _, s := range needles {
				if strings.Contains(t.Code, s) {
					return true
				}
			}
			return false
		}
	case c.Regex != "":
		re := regexp.MustCompile(c.Regex)
		return func(t review.Target) bool { return re.MatchString(t.Code) }
	case c.CountExceeds != nil:
		pattern := regexp.MustCompile(c.CountExceeds.Pattern)
		over := regexp.MustCompile(c.CountExceeds.Over)
		return func(t review.Target) bool {
			return len(pattern.FindAllStringIndex(t.Code, -1)) > len(over.FindAllStringIndex(t.Code, -1))
		}
	case c.Compiler != "":
		want := cppstd.Compiler(c.Compiler)
		return func(t review.Target) bool { return t.Compiler == want }
	case c.MinVersion != "":
		floor := cppstd.MustParseVersion(c.MinVersion)
		return func(t review.Target) bool { return t.Version.AtLeast(floor) }
	}
	return func(review.Target) bool { return false }
}
