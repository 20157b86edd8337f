package insights

// Verdict buckets a subscription's cost per use.
type Verdict string

const (
	VerdictUnused Verdict = "unused"
	VerdictPoor   Verdict = "poor"
	VerdictFair   Verdict = "fair"
	VerdictGood   Verdict = "good"
)

// Cost-per-use thresholds in dollars.
const (
	goodCostPerUse = 2.0
	fairCostPerUse = 8.0
)

// ROIScore is the computed value assessment for one subscription.
type ROIScore struct {
	SubscriptionID int     `json:"subscription_id"`
	Name           string  `json:"name"`
	MonthlyCost    float64 `json:"monthly_cost"`
	UsesPerMonth   int     `json:"uses_per_month"`
	CostPerUse     float64 `json:"cost_per_use"`
	Verdict        Verdict `json:"verdict"`
}

// MonthlyCost normalizes a billing amount to a per-month figure.
// Unknown cycles are treated as monthly.
func MonthlyCost(amount float64, billingCycle string) float64 {
	switch billingCycle {
	case "weekly":
		// 52 weeks over 12 months.
		return roundCents(amount * 52 / 12)
	case "yearly":
		return roundCents(amount / 12)
	default:
		return roundCents(amount)
	}
}

// ScoreSubscription grades one subscription by cost per use: unused when it
// is never used, then good/fair/poor by how much each use costs.
func ScoreSubscription(id int, name string, amount float64, billingCycle string, usesPerMonth int) ROIScore {
	monthly := MonthlyCost(amount, billingCycle)
	score := ROIScore{
		SubscriptionID: id,
		Name:           name,
		MonthlyCost:    monthly,
		UsesPerMonth:   usesPerMonth,
	}
	if usesPerMonth <= 0 {
		score.Verdict = VerdictUnused
		return score
	}
	score.CostPerUse = roundCents(monthly / float64(usesPerMonth))
	switch {
	case score.CostPerUse <= goodCostPerUse:
		score.Verdict = VerdictGood
	case score.CostPerUse <= fairCostPerUse:
		score.Verdict = VerdictFair
	default:
		score.Verdict = VerdictPoor
	}
	return score
}
