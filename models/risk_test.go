package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreRisk(t *testing.T) {
	tests := []struct {
		severity, likelihood int
		score                int
		category             RiskCategory
	}{
		{1, 1, 1, RiskLow},
		{1, 3, 3, RiskLow},
		{2, 2, 4, RiskMedium},
		{3, 2, 6, RiskMedium},
		{2, 4, 8, RiskHigh},
		{3, 3, 9, RiskHigh},
		{3, 4, 12, RiskExtreme},
		{4, 4, 16, RiskExtreme},
	}

	for _, tt := range tests {
		score, category := ScoreRisk(tt.severity, tt.likelihood)
		assert.Equal(t, tt.score, score, "score for %dx%d", tt.severity, tt.likelihood)
		assert.Equal(t, tt.category, category, "category for %dx%d", tt.severity, tt.likelihood)
	}
}

func TestScoreRiskCoversWholeGrid(t *testing.T) {
	for s := MinRating; s <= MaxRating; s++ {
		for l := MinRating; l <= MaxRating; l++ {
			score, category := ScoreRisk(s, l)
			assert.Equal(t, s*l, score)
			assert.Contains(t, []RiskCategory{RiskLow, RiskMedium, RiskHigh, RiskExtreme}, category)
		}
	}
}

func TestCategoryForScoreUnassessed(t *testing.T) {
	assert.Equal(t, RiskLow, CategoryForScore(0))
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(4))
	assert.False(t, ValidRating(5))
}
