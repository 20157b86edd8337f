package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRuleRequestValidate(t *testing.T) {
	valid := categoryRuleRequest{
		Name:          "uber rides",
		MatchField:    "merchant",
		MatchOperator: "contains",
		MatchValue:    "uber",
		CategoryID:    3,
		AppliesTo:     []string{"expense"},
	}
	assert.NoError(t, valid.validate())

	bad := valid
	bad.MatchField = "color"
	assert.Error(t, bad.validate())

	bad = valid
	bad.MatchOperator = "regex"
	assert.Error(t, bad.validate())

	bad = valid
	bad.AppliesTo = nil
	assert.Error(t, bad.validate())

	bad = valid
	bad.AppliesTo = []string{"expense", "refund"}
	assert.Error(t, bad.validate())

	bad = valid
	bad.MatchValue = ""
	assert.Error(t, bad.validate())
}

func TestCategoryRuleRequestToModelDefaultsActive(t *testing.T) {
	req := categoryRuleRequest{
		Name:          "rent",
		MatchField:    "note",
		MatchOperator: "equals",
		MatchValue:    "rent",
		CategoryID:    1,
		AppliesTo:     []string{"expense"},
	}
	rule := req.toModel(7, 0)
	assert.True(t, rule.IsActive, "is_active defaults to true when omitted")
	assert.Equal(t, 7, rule.UserID)

	inactive := false
	req.IsActive = &inactive
	assert.False(t, req.toModel(7, 0).IsActive)
}

func TestExpenseRequestToModel(t *testing.T) {
	req := expenseRequest{
		Amount:   12.5,
		Merchant: "Chipotle",
		Date:     "2026-03-14",
	}
	expense, err := req.toModel(7, 0)
	require.NoError(t, err)
	assert.Equal(t, "expense", expense.Kind, "kind defaults to expense")
	assert.Equal(t, 2026, expense.Date.Year())

	req.Date = "14/03/2026"
	_, err = req.toModel(7, 0)
	assert.Error(t, err)
}

func TestSplitBillRequestValidate(t *testing.T) {
	valid := splitBillRequest{
		Name:        "dinner",
		TotalAmount: 90,
		Date:        "2026-03-14",
		Participants: []struct {
			Name        string  `json:"name"`
			ShareAmount float64 `json:"share_amount"`
		}{
			{Name: "alice", ShareAmount: 30},
			{Name: "bob", ShareAmount: 30},
			{Name: "carol", ShareAmount: 30},
		},
	}
	assert.Empty(t, valid.validate())

	// A cent of rounding drift is tolerated in either direction, including
	// exactly one cent despite float64 representation error.
	drift := valid
	drift.TotalAmount = 90.01
	assert.Empty(t, drift.validate())
	drift.TotalAmount = 89.99
	assert.Empty(t, drift.validate())

	twoCents := valid
	twoCents.TotalAmount = 90.02
	assert.NotEmpty(t, twoCents.validate())

	short := valid
	short.TotalAmount = 100
	assert.NotEmpty(t, short.validate())

	noParticipants := valid
	noParticipants.Participants = nil
	assert.NotEmpty(t, noParticipants.validate())

	negativeShare := valid
	negativeShare.Participants = append([]struct {
		Name        string  `json:"name"`
		ShareAmount float64 `json:"share_amount"`
	}{}, valid.Participants...)
	negativeShare.Participants[0].ShareAmount = -30
	assert.NotEmpty(t, negativeShare.validate())
}

func TestBudgetRequestAllocationInputs(t *testing.T) {
	req := budgetRequest{
		Name:   "monthly",
		Amount: 2000,
		Allocations: []struct {
			CategoryID int     `json:"category_id"`
			Percent    float64 `json:"percent"`
		}{
			{CategoryID: 1, Percent: 50},
			{CategoryID: 2, Percent: 25},
		},
	}
	inputs := req.allocationInputs()
	require.Len(t, inputs, 2)
	assert.Equal(t, 1, inputs[0].CategoryID)
	assert.Equal(t, 50.0, inputs[0].Percent)

	budget := req.toModel(7, 3)
	assert.Equal(t, 3, budget.ID)
	assert.Len(t, budget.Allocations, 2)
}
