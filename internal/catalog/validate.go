package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/cppscore/internal/cppstd"
	"github.com/dshills/cppscore/internal/review"
)

// ValidationError describes a single catalog violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a catalog for structural validity.
func Validate(f *File) []ValidationError {
	var errs []ValidationError

	if f.Name == "" {
		errs = append(errs, ValidationError{"name", "required"})
	}
	if len(f.Rules) == 0 {
		errs = append(errs, ValidationError{"rules", "at least one rule required"})
	}

	ids := make(map[string]bool)
	for i, r := range f.Rules {
		prefix := fmt.Sprintf("rules[%d]", i)
		if r.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if ids[r.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", r.ID)})
		} else {
			ids[r.ID] = true
		}
		sev := review.Severity(r.Severity)
		if !sev.Valid() || sev == review.SeverityGood {
			errs = append(errs, ValidationError{prefix + ".severity", fmt.Sprintf("must be high, medium or low, got %q", r.Severity)})
		}
		if r.Penalty < 0 {
			errs = append(errs, ValidationError{prefix + ".penalty", "must be >= 0"})
		}
		if r.Text == "" {
			errs = append(errs, ValidationError{prefix + ".text", "required"})
		}
		if len(r.When) == 0 {
			errs = append(errs, ValidationError{prefix + ".when", "at least one condition required"})
		}
		for j, c := range r.When {
			errs = append(errs, validateCondition(fmt.Sprintf("%s.when[%d]", prefix, j), c)...)
		}
	}

	return errs
}

func validateCondition(prefix string, c Condition) []ValidationError {
	var errs []ValidationError
	kinds := c.kinds()
	switch len(kinds) {
	case 0:
		return []ValidationError{{prefix, "no condition set"}}
	case 1:
	default:
		return []ValidationError{{prefix, fmt.Sprintf("exactly one condition allowed, got %s", strings.Join(kinds, ", "))}}
	}

	if c.Regex != "" {
		if _, err := regexp.Compile(c.Regex); err != nil {
			errs = append(errs, ValidationError{prefix + ".regex", err.Error()})
		}
	}
	if cc := c.CountExceeds; cc != nil {
		if cc.Pattern == "" {
			errs = append(errs, ValidationError{prefix + ".count_exceeds.pattern", "required"})
		} else if _, err := regexp.Compile(cc.Pattern); err != nil {
			errs = append(errs, ValidationError{prefix + ".count_exceeds.pattern", err.Error()})
		}
		if cc.Over == "" {
			errs = append(errs, ValidationError{prefix + ".count_exceeds.over", "required"})
		} else if _, err := regexp.Compile(cc.Over); err != nil {
			errs = append(errs, ValidationError{prefix + ".count_exceeds.over", err.Error()})
		}
	}
	if c.MinVersion != "" {
		if _, err := cppstd.ParseVersion(c.MinVersion); err != nil {
			errs = append(errs, ValidationError{prefix + ".min_version", fmt.Sprintf("unknown standard %q", c.MinVersion)})
		}
	}
	for k, s := range c.AnyOf {
		if s == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("%s.any_of[%d]", prefix, k), "must not be empty"})
		}
	}
	return errs
}
