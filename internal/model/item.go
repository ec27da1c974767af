package model

import "time"

// FoundItem is an item a visitor reported as found on campus.
type FoundItem struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	LocationFound string    `json:"location_found"`
	LocationID    string    `json:"location_id,omitempty"`
	DateFound     string    `json:"date_found"`
	Description   string    `json:"description"`
	PhotoFilename string    `json:"photo_filename,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Item statuses. Items start pending, become visible once approved and
// leave the browse listing when claimed.
const (
	ItemStatusPending  = "pending"
	ItemStatusApproved = "approved"
	ItemStatusClaimed  = "claimed"
)

// ValidItemStatus reports whether status is one of the known item statuses.
func ValidItemStatus(status string) bool {
	switch status {
	case ItemStatusPending, ItemStatusApproved, ItemStatusClaimed:
		return true
	}
	return false
}

// ItemStats holds the counters shown on the home page.
type ItemStats struct {
	TotalFound    int `json:"total_found"`
	ApprovedFound int `json:"approved_found"`
	Claimed       int `json:"claimed"`
	Pending       int `json:"pending"`
	TotalClaims   int `json:"total_claims"`
}
