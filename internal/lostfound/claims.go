package lostfound

import (
	"context"
	"strings"

	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
)

// ClaimInput is a visitor's claim on an item.
type ClaimInput struct {
	StudentName string
	Email       string
	Message     string
}

// SubmitClaim records a claim for follow-up by the admin. Any existing item
// can be claimed regardless of its status; the item itself is not changed.
func (s *Service) SubmitClaim(ctx context.Context, itemID int64, in ClaimInput) (*model.Claim, error) {
	in.StudentName = strings.TrimSpace(in.StudentName)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if in.StudentName == "" || in.Email == "" || in.Message == "" {
		return nil, model.Errorf(model.ErrValidation, "Please fill out all required fields.")
	}
	if !plausibleEmail(in.Email) {
		return nil, model.Errorf(model.ErrValidation, "Please enter a valid email address.")
	}

	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, err
	}

	return store.CreateClaim(ctx, s.DB, itemID, in.StudentName, in.Email, in.Message)
}

func plausibleEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}

// ItemClaims returns an item with every claim filed against it, newest
// first. Missing items yield ErrNotFound.
func (s *Service) ItemClaims(ctx context.Context, itemID int64) (*model.FoundItem, []model.Claim, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	claims, err := store.ListItemClaims(ctx, s.DB, itemID)
	if err != nil {
		return nil, nil, err
	}
	return item, claims, nil
}
