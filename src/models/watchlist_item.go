package models

import "time"

type WatchlistItem struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	InvestmentType string    `json:"investment_type"`
	TargetPrice    *float64  `json:"target_price,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CategoryID     *int      `json:"category_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
