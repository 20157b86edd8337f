package models

import "time"

// Category is a spending category. Rows with a NULL user_id are the seeded
// defaults visible to everyone; user-owned rows belong to one user.
type Category struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
