// Package insights holds the pure computations behind budget allocations,
// subscription ROI scoring, and duplicate subscription detection.
package insights

import (
	"fmt"
	"math"
)

// AllocationInput is one category's share of a budget.
type AllocationInput struct {
	CategoryID int
	Percent    float64
}

// AllocationAmount is the dollar amount a percentage works out to.
type AllocationAmount struct {
	CategoryID int     `json:"category_id"`
	Percent    float64 `json:"percent"`
	Amount     float64 `json:"amount"`
}

// ValidateAllocations checks each percentage is in (0, 100] and the total
// does not exceed 100. Duplicate categories are rejected.
func ValidateAllocations(allocs []AllocationInput) error {
	seen := make(map[int]bool, len(allocs))
	total := 0.0
	for _, a := range allocs {
		if a.Percent <= 0 || a.Percent > 100 {
			return fmt.Errorf("allocation percent must be in (0, 100], got %.2f", a.Percent)
		}
		if seen[a.CategoryID] {
			return fmt.Errorf("duplicate allocation for category %d", a.CategoryID)
		}
		seen[a.CategoryID] = true
		total += a.Percent
	}
	if total > 100.0+1e-9 {
		return fmt.Errorf("allocations total %.2f%%, must not exceed 100%%", total)
	}
	return nil
}

// AllocatedAmounts converts percentages of a budget amount into dollar
// amounts, rounded to the cent.
func AllocatedAmounts(budgetAmount float64, allocs []AllocationInput) []AllocationAmount {
	out := make([]AllocationAmount, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, AllocationAmount{
			CategoryID: a.CategoryID,
			Percent:    a.Percent,
			Amount:     roundCents(budgetAmount * a.Percent / 100),
		})
	}
	return out
}

// UnallocatedPercent returns how much of the budget is not covered by the
// given allocations, never below zero.
func UnallocatedPercent(allocs []AllocationInput) float64 {
	total := 0.0
	for _, a := range allocs {
		total += a.Percent
	}
	if total >= 100 {
		return 0
	}
	return roundCents(100 - total)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
