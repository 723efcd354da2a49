package review

// Severity indicates the importance of an issue.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityGood   Severity = "good"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow, SeverityGood:
		return true
	}
	return false
}

// Rank returns the sort weight of a severity (higher = more important).
// Unknown severities rank with good.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}
