// Package render produces Markdown and plain-text reports from a review.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/cppscore/internal/review"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *review.Report) string {
	var b strings.Builder

	b.WriteString("# C++ Robustness Report\n\n")
	if r.Input.File != "" {
		fmt.Fprintf(&b, "**File:** %s\n", r.Input.File)
	}
	fmt.Fprintf(&b, "**Standard:** %s (%s)\n", r.Input.Standard, r.Input.Compiler)
	fmt.Fprintf(&b, "**Score:** %d / 100\n", r.Summary.Score)
	fmt.Fprintf(&b, "**Issues:** %d high, %d medium, %d low\n\n",
		r.Summary.HighCount, r.Summary.MediumCount, r.Summary.LowCount)

	sections := []struct {
		sev   review.Severity
		title string
	}{
		{review.SeverityHigh, "High"},
		{review.SeverityMedium, "Medium"},
		{review.SeverityLow, "Low"},
	}
	for _, s := range sections {
		issues := filterIssues(r.Issues, s.sev)
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", s.title)
		for _, iss := range issues {
			renderIssue(&b, iss)
		}
		b.WriteString("\n")
	}

	if good := filterIssues(r.Issues, review.SeverityGood); len(good) > 0 {
		for _, iss := range good {
			fmt.Fprintf(&b, "%s\n\n", iss.Text)
		}
	}

	if len(r.Input.Standards) > 0 {
		fmt.Fprintf(&b, "_Standards covered: %s_\n", strings.Join(r.Input.Standards, ", "))
	}

	return b.String()
}

// Text renders a report for a terminal.
func Text(r *review.Report) string {
	var b strings.Builder

	name := r.Input.File
	if name == "" {
		name = "<snippet>"
	}
	fmt.Fprintf(&b, "%s  [%s, %s]\n", name, r.Input.Standard, r.Input.Compiler)
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Score: %d\n", r.Summary.Score)
	b.WriteString(strings.Repeat("-", 60) + "\n")

	for _, iss := range r.Issues {
		fmt.Fprintf(&b, "%-6s %s\n", severityLabel(iss.Severity), iss.Text)
	}

	return b.String()
}

func filterIssues(issues []review.Issue, sev review.Severity) []review.Issue {
	var result []review.Issue
	for _, iss := range issues {
		if iss.Severity == sev {
			result = append(result, iss)
		}
	}
	return result
}

func renderIssue(b *strings.Builder, iss review.Issue) {
	if iss.Rule != "" {
		fmt.Fprintf(b, "- %s (`%s`)\n", iss.Text, iss.Rule)
		return
	}
	fmt.Fprintf(b, "- %s\n", iss.Text)
}

func severityLabel(s review.Severity) string {
	switch s {
	case review.SeverityHigh:
		return "[!!]"
	case review.SeverityMedium:
		return "[!]"
	case review.SeverityLow:
		return "[-]"
	case review.SeverityGood:
		return "[ok]"
	default:
		return "[?]"
	}
}
