// Package lostfound implements the lost-and-found workflows: reporting and
// moderating found items, claims, anonymous reviews and the admin
// credential.
package lostfound

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/campuslf/lostfound/internal/location"
	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/uploads"
)

// Service holds the dependencies shared by all operations.
type Service struct {
	DB        *sql.DB
	Uploads   *uploads.Store
	Locations *location.Registry

	// MaxReviewLen limits review length in characters.
	MaxReviewLen int
	// HashCost is the bcrypt cost for new password hashes.
	HashCost int
}

// New returns a Service with default limits.
func New(db *sql.DB, up *uploads.Store, locs *location.Registry) *Service {
	return &Service{
		DB:           db,
		Uploads:      up,
		Locations:    locs,
		MaxReviewLen: model.DefaultMaxReviewLen,
		HashCost:     bcrypt.DefaultCost,
	}
}
