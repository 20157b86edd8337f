package models

import "time"

// SplitBill is a shared bill divided among participants. ShareToken is an
// unguessable uuid granting read-only access without authentication.
type SplitBill struct {
	ID           int                    `json:"id"`
	UserID       int                    `json:"user_id"`
	Name         string                 `json:"name"`
	TotalAmount  float64                `json:"total_amount"`
	Date         time.Time              `json:"date"`
	ShareToken   string                 `json:"share_token"`
	CategoryID   *int                   `json:"category_id,omitempty"`
	Participants []SplitBillParticipant `json:"participants,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

type SplitBillParticipant struct {
	ID          int     `json:"id"`
	BillID      int     `json:"bill_id"`
	Name        string  `json:"name"`
	ShareAmount float64 `json:"share_amount"`
	Settled     bool    `json:"settled"`
}
