package models

import "time"

type Subscription struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	Name            string    `json:"name"`
	Merchant        string    `json:"merchant,omitempty"`
	Amount          float64   `json:"amount"`
	BillingCycle    string    `json:"billing_cycle"`
	NextBillingDate time.Time `json:"next_billing_date"`
	UsesPerMonth    int       `json:"uses_per_month"`
	IsActive        bool      `json:"is_active"`
	CategoryID      *int      `json:"category_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
