// Package rules implements first-match-wins category rule evaluation.
// Evaluation is a pure function over an in-memory rule set; loading rules
// from the database lives in db/sql.
package rules

import (
	"sort"
	"strings"
)

// TransactionType identifies which kind of record a rule set is being
// evaluated against.
type TransactionType string

const (
	TypeExpense    TransactionType = "expense"
	TypeIncome     TransactionType = "income"
	TypeGoal       TransactionType = "goal"
	TypeBill       TransactionType = "bill"
	TypeInvestment TransactionType = "investment"
)

// TransactionTypes lists every valid transaction type.
var TransactionTypes = []TransactionType{TypeExpense, TypeIncome, TypeGoal, TypeBill, TypeInvestment}

// ValidTransactionType reports whether s names a known transaction type.
func ValidTransactionType(s string) bool {
	for _, t := range TransactionTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Field names a record attribute a rule can match on.
type Field string

const (
	FieldMerchant       Field = "merchant"
	FieldNote           Field = "note"
	FieldTag            Field = "tag"
	FieldLocation       Field = "location"
	FieldGoalName       Field = "goal_name"
	FieldBillName       Field = "bill_name"
	FieldInvestmentType Field = "investment_type"
)

// Fields lists every matchable field.
var Fields = []Field{FieldMerchant, FieldNote, FieldTag, FieldLocation, FieldGoalName, FieldBillName, FieldInvestmentType}

// ValidField reports whether s names a matchable field.
func ValidField(s string) bool {
	for _, f := range Fields {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Operator is a case-insensitive string comparison applied between a record
// field and a rule's match value.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
)

// Operators lists every supported match operator.
var Operators = []Operator{OpEquals, OpContains, OpStartsWith, OpEndsWith}

// ValidOperator reports whether s names a supported operator.
func ValidOperator(s string) bool {
	for _, op := range Operators {
		if string(op) == s {
			return true
		}
	}
	return false
}

// Rule is one category rule as evaluated. The persistence model in
// src/models embeds this shape plus ownership and timestamps.
type Rule struct {
	ID         int
	Name       string
	Field      Field
	Operator   Operator
	Value      string
	CategoryID int
	AppliesTo  []string
	Priority   int
	Active     bool
}

// AppliesToType reports whether the rule is restricted to txType.
func (r Rule) AppliesToType(txType TransactionType) bool {
	for _, t := range r.AppliesTo {
		if t == string(txType) {
			return true
		}
	}
	return false
}

// Record carries the optional string fields of a transaction-like record.
// Absent fields are empty strings.
type Record map[Field]string

// Evaluate returns the category id of the highest-priority active rule that
// matches the record, and whether any rule matched. Rules whose applies_to
// does not include txType are excluded. Equal priorities are broken by rule
// id ascending, so evaluation order is deterministic regardless of input
// order. A rule whose configured field is empty on the record is skipped,
// even when its match value is also empty.
func Evaluate(txType TransactionType, record Record, ruleset []Rule) (int, bool) {
	candidates := make([]Rule, 0, len(ruleset))
	for _, r := range ruleset {
		if !r.Active || !r.AppliesToType(txType) {
			continue
		}
		candidates = append(candidates, r)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].ID < candidates[j].ID
	})

	for _, r := range candidates {
		if Matches(r, record) {
			return r.CategoryID, true
		}
	}
	return 0, false
}

// Matches reports whether a single rule matches the record. Inactive rules
// and applies_to restrictions are the caller's concern.
func Matches(r Rule, record Record) bool {
	fieldValue := record[r.Field]
	if fieldValue == "" {
		return false
	}
	have := strings.ToLower(fieldValue)
	want := strings.ToLower(r.Value)

	switch r.Operator {
	case OpEquals:
		return have == want
	case OpContains:
		return strings.Contains(have, want)
	case OpStartsWith:
		return strings.HasPrefix(have, want)
	case OpEndsWith:
		return strings.HasSuffix(have, want)
	default:
		return false
	}
}
