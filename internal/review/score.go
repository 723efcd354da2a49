package review

const (
	StartScore = 100
	MinScore   = 12
	MaxScore   = 99
)

// ClampScore restricts a raw score to [MinScore, MaxScore].
// An untouched score of 100 therefore reports as 99.
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
