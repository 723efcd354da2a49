package review

// ComputeSummary derives severity counts from issues and carries the score.
// The synthetic good issue is not counted.
func ComputeSummary(issues []Issue, score int) Summary {
	s := Summary{Score: score}
	for _, iss := range issues {
		switch iss.Severity {
		case SeverityHigh:
			s.HighCount++
		case SeverityMedium:
			s.MediumCount++
		case SeverityLow:
			s.LowCount++
		}
	}
	return s
}
