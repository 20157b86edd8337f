package models

import "time"

// Expense is a manually entered transaction. Kind is "expense" or "income";
// income rows use the same optional match fields for rule evaluation.
type Expense struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Kind       string    `json:"kind"`
	Amount     float64   `json:"amount"`
	Merchant   string    `json:"merchant,omitempty"`
	Note       string    `json:"note,omitempty"`
	Tag        string    `json:"tag,omitempty"`
	Location   string    `json:"location,omitempty"`
	CategoryID *int      `json:"category_id,omitempty"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
