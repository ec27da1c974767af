package model

import "time"

// Review is an anonymous feedback entry.
type Review struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating bounds. Anything outside them is stored as DefaultRating.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// DefaultMaxReviewLen is the default limit on review length, in characters.
const DefaultMaxReviewLen = 300
