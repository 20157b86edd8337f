package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyCost(t *testing.T) {
	assert.Equal(t, 15.99, MonthlyCost(15.99, "monthly"))
	assert.Equal(t, 10.0, MonthlyCost(120, "yearly"))
	assert.Equal(t, 43.33, MonthlyCost(10, "weekly"))
	assert.Equal(t, 9.99, MonthlyCost(9.99, ""), "unknown cycle treated as monthly")
}

func TestScoreSubscriptionUnused(t *testing.T) {
	score := ScoreSubscription(1, "Gym", 45, "monthly", 0)
	assert.Equal(t, VerdictUnused, score.Verdict)
	assert.Equal(t, 0.0, score.CostPerUse)
}

func TestScoreSubscriptionVerdicts(t *testing.T) {
	// 15.99/month used 20x -> $0.80 per use.
	assert.Equal(t, VerdictGood, ScoreSubscription(1, "Spotify", 15.99, "monthly", 20).Verdict)
	// 45/month used 8x -> $5.63 per use.
	assert.Equal(t, VerdictFair, ScoreSubscription(2, "Gym", 45, "monthly", 8).Verdict)
	// 45/month used 2x -> $22.50 per use.
	assert.Equal(t, VerdictPoor, ScoreSubscription(3, "Gym", 45, "monthly", 2).Verdict)
}

func TestScoreSubscriptionNormalizesYearly(t *testing.T) {
	// $120/year used once a month -> $10 per use -> poor.
	score := ScoreSubscription(4, "Prime", 120, "yearly", 1)
	assert.Equal(t, 10.0, score.MonthlyCost)
	assert.Equal(t, 10.0, score.CostPerUse)
	assert.Equal(t, VerdictPoor, score.Verdict)
}
