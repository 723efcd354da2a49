package review

import "sort"

// SortIssues orders issues by severity (high > medium > low > good).
// The sort is stable: issues of equal severity keep the order in which the
// rules produced them.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() > issues[j].Severity.Rank()
	})
}
