package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEqualsIsCaseInsensitive(t *testing.T) {
	ruleset := []Rule{
		{ID: 1, Field: FieldMerchant, Operator: OpEquals, Value: "Starbucks", CategoryID: 7, AppliesTo: []string{"expense"}, Priority: 1, Active: true},
	}

	cat, ok := Evaluate(TypeExpense, Record{FieldMerchant: "starbucks"}, ruleset)
	assert.True(t, ok)
	assert.Equal(t, 7, cat)
}

func TestEvaluateHigherPriorityWins(t *testing.T) {
	ruleset := []Rule{
		{ID: 1, Field: FieldMerchant, Operator: OpContains, Value: "eats", CategoryID: 2, AppliesTo: []string{"expense"}, Priority: 5, Active: true},
		{ID: 2, Field: FieldMerchant, Operator: OpContains, Value: "uber", CategoryID: 1, AppliesTo: []string{"expense"}, Priority: 10, Active: true},
	}

	cat, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Uber Eats"}, ruleset)
	assert.True(t, ok)
	assert.Equal(t, 1, cat, "priority 10 rule should win over priority 5")
}

func TestEvaluateInactiveRuleNeverApplies(t *testing.T) {
	ruleset := []Rule{
		{ID: 1, Field: FieldMerchant, Operator: OpEquals, Value: "netflix", CategoryID: 3, AppliesTo: []string{"expense"}, Priority: 10, Active: false},
	}

	_, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Netflix"}, ruleset)
	assert.False(t, ok)
}

func TestEvaluateAppliesToExcludesOtherTypes(t *testing.T) {
	ruleset := []Rule{
		{ID: 1, Field: FieldMerchant, Operator: OpContains, Value: "uber", CategoryID: 4, AppliesTo: []string{"income"}, Priority: 10, Active: true},
	}

	_, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Uber"}, ruleset)
	assert.False(t, ok, "expense evaluation must not apply an income-only rule")
}

func TestEvaluateEmptyFieldSkipsRule(t *testing.T) {
	ruleset := []Rule{
		{ID: 1, Field: FieldNote, Operator: OpEquals, Value: "", CategoryID: 5, AppliesTo: []string{"expense"}, Priority: 10, Active: true},
	}

	_, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Somewhere"}, ruleset)
	assert.False(t, ok, "empty record field must skip the rule even when match_value is empty")
}

func TestEvaluateEqualPriorityTieBreaksByID(t *testing.T) {
	ruleset := []Rule{
		{ID: 9, Field: FieldMerchant, Operator: OpContains, Value: "coffee", CategoryID: 2, AppliesTo: []string{"expense"}, Priority: 5, Active: true},
		{ID: 3, Field: FieldMerchant, Operator: OpContains, Value: "coffee", CategoryID: 1, AppliesTo: []string{"expense"}, Priority: 5, Active: true},
	}

	cat, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Blue Bottle Coffee"}, ruleset)
	assert.True(t, ok)
	assert.Equal(t, 1, cat, "lower id wins among equal priorities")

	// Input order must not matter.
	cat, ok = Evaluate(TypeExpense, Record{FieldMerchant: "Blue Bottle Coffee"}, []Rule{ruleset[1], ruleset[0]})
	assert.True(t, ok)
	assert.Equal(t, 1, cat)
}

func TestEvaluateNoRules(t *testing.T) {
	_, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Anything"}, nil)
	assert.False(t, ok)
}

func TestEvaluateFirstMatchShortCircuits(t *testing.T) {
	ruleset := []Rule{
		{ID: 1, Field: FieldMerchant, Operator: OpStartsWith, Value: "am", CategoryID: 1, AppliesTo: []string{"expense"}, Priority: 10, Active: true},
		{ID: 2, Field: FieldMerchant, Operator: OpContains, Value: "amazon", CategoryID: 2, AppliesTo: []string{"expense"}, Priority: 1, Active: true},
	}

	cat, ok := Evaluate(TypeExpense, Record{FieldMerchant: "Amazon"}, ruleset)
	assert.True(t, ok)
	assert.Equal(t, 1, cat, "at most one category per evaluation")
}

func TestMatchesOperators(t *testing.T) {
	record := Record{FieldMerchant: "Trader Joe's Downtown"}

	cases := []struct {
		op    Operator
		value string
		want  bool
	}{
		{OpEquals, "trader joe's downtown", true},
		{OpEquals, "trader joe's", false},
		{OpContains, "JOE", true},
		{OpContains, "costco", false},
		{OpStartsWith, "trader", true},
		{OpStartsWith, "downtown", false},
		{OpEndsWith, "Downtown", true},
		{OpEndsWith, "trader", false},
	}
	for _, tc := range cases {
		r := Rule{Field: FieldMerchant, Operator: tc.op, Value: tc.value}
		assert.Equal(t, tc.want, Matches(r, record), "%s %q", tc.op, tc.value)
	}
}

func TestMatchesGoalBillInvestmentFields(t *testing.T) {
	record := Record{
		FieldGoalName:       "Emergency Fund",
		FieldBillName:       "Dinner at Luigi's",
		FieldInvestmentType: "etf",
	}

	assert.True(t, Matches(Rule{Field: FieldGoalName, Operator: OpContains, Value: "emergency"}, record))
	assert.True(t, Matches(Rule{Field: FieldBillName, Operator: OpStartsWith, Value: "dinner"}, record))
	assert.True(t, Matches(Rule{Field: FieldInvestmentType, Operator: OpEquals, Value: "ETF"}, record))
	assert.False(t, Matches(Rule{Field: FieldLocation, Operator: OpContains, Value: "anything"}, record))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidTransactionType("expense"))
	assert.False(t, ValidTransactionType("refund"))
	assert.True(t, ValidField("investment_type"))
	assert.False(t, ValidField("amount"))
	assert.True(t, ValidOperator("starts_with"))
	assert.False(t, ValidOperator("regex"))
}
