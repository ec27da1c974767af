package model

import "time"

// Claim is a visitor's request to collect a found item.
type Claim struct {
	ID          int64     `json:"id"`
	ItemID      int64     `json:"item_id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ItemTitle string `json:"item_title,omitempty"`
}
