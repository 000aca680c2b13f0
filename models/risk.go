package models

// RiskCategory is the banded label of a severity x likelihood score
type RiskCategory string

const (
	RiskLow     RiskCategory = "Low"
	RiskMedium  RiskCategory = "Medium"
	RiskHigh    RiskCategory = "High"
	RiskExtreme RiskCategory = "Extreme"
)

// Bounds of the severity and likelihood scales
const (
	MinRating = 1
	MaxRating = 4
)

// Lower bounds of each band, inclusive
const (
	extremeThreshold = 12
	highThreshold    = 8
	mediumThreshold  = 4
)

// ScoreRisk multiplies severity by likelihood and bands the result.
// Both inputs must already be validated to [1,4].
func ScoreRisk(severity, likelihood int) (int, RiskCategory) {
	score := severity * likelihood
	return score, CategoryForScore(score)
}

// CategoryForScore bands a score. Unassessed hazards score 0 and land in Low.
func CategoryForScore(score int) RiskCategory {
	switch {
	case score >= extremeThreshold:
		return RiskExtreme
	case score >= highThreshold:
		return RiskHigh
	case score >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ValidRating reports whether v is on the 1-4 scale
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}
