package lostfound

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campuslf/lostfound/internal/imaging"
	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
	"github.com/campuslf/lostfound/internal/uploads"
)

// RecentClaimsLimit is the number of claims shown on the admin overview.
const RecentClaimsLimit = 50

// Upload is a photo attached to a report.
type Upload struct {
	Filename string
	Data     []byte
}

// ReportInput is a visitor's found-item report.
type ReportInput struct {
	Title       string
	Category    string
	LocationID  string
	DateFound   string
	Description string
	Photo       *Upload
}

// AdminOverview is everything shown on the admin panel.
type AdminOverview struct {
	Items  []model.FoundItem
	Claims []model.Claim
}

// Report validates and stores a new found item. The item starts pending and
// stays invisible until an admin approves it.
func (s *Service) Report(ctx context.Context, in ReportInput) (*model.FoundItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.LocationID = strings.TrimSpace(in.LocationID)
	in.DateFound = strings.TrimSpace(in.DateFound)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" || in.Category == "" || in.LocationID == "" || in.DateFound == "" || in.Description == "" {
		return nil, model.Errorf(model.ErrValidation, "Please fill out all required fields.")
	}

	var photo string
	if in.Photo != nil && in.Photo.Filename != "" {
		if !uploads.AllowedFile(in.Photo.Filename) {
			return nil, model.Errorf(model.ErrUnsupportedMedia, "Photo must be PNG/JPG/JPEG/WEBP.")
		}
		if _, err := imaging.CheckBytes(in.Photo.Data); err != nil {
			return nil, model.Errorf(model.ErrUnsupportedMedia, "Photo must be a PNG/JPG/JPEG/WEBP image.")
		}

		name, err := s.Uploads.Save(in.Photo.Filename, bytes.NewReader(in.Photo.Data))
		if err != nil {
			return nil, fmt.Errorf("saving photo: %w", err)
		}
		photo = name
	}

	locationID := in.LocationID
	if loc, ok := s.Locations.Lookup(locationID); ok {
		locationID = loc.ID
	}

	item, err := store.CreateItem(ctx, s.DB, &model.FoundItem{
		Title:         in.Title,
		Category:      in.Category,
		LocationFound: s.Locations.DisplayName(in.LocationID),
		LocationID:    locationID,
		DateFound:     in.DateFound,
		Description:   in.Description,
		PhotoFilename: photo,
	})
	if err != nil && photo != "" {
		if rmErr := s.Uploads.Remove(photo); rmErr != nil {
			slog.Warn("failed to remove photo of rejected report", "photo", photo, "error", rmErr)
		}
	}
	return item, err
}

// Browse lists approved items, newest first. query matches title,
// description or location text; category must match exactly. Both are
// optional.
func (s *Service) Browse(ctx context.Context, query, category string) ([]model.FoundItem, error) {
	return store.ListItems(ctx, s.DB, store.ItemFilter{
		Statuses: []string{model.ItemStatusApproved},
		Query:    strings.TrimSpace(query),
		Category: strings.TrimSpace(category),
	})
}

// Categories lists every category in use, for the browse filter.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return store.ListCategories(ctx, s.DB)
}

// Get returns an item regardless of status, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*model.FoundItem, error) {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.Errorf(model.ErrNotFound, "Item not found.")
	}
	return item, nil
}

// Approve publishes an item. The previous status is not checked and a
// missing item is not an error.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return store.SetItemStatus(ctx, s.DB, id, model.ItemStatusApproved)
}

// MarkClaimed records that an item was returned to its owner. The previous
// status is not checked and a missing item is not an error.
func (s *Service) MarkClaimed(ctx context.Context, id int64) error {
	return store.SetItemStatus(ctx, s.DB, id, model.ItemStatusClaimed)
}

// Delete removes an item and its claims, then removes its photo. Failing to
// remove the photo is logged, not returned.
func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	if err := store.DeleteItem(ctx, s.DB, id); err != nil {
		return err
	}

	if item.PhotoFilename != "" {
		if err := s.Uploads.Remove(item.PhotoFilename); err != nil {
			slog.Warn("failed to remove photo", "item", id, "photo", item.PhotoFilename, "error", err)
		}
	}
	return nil
}

// Overview returns all items and the most recent claims.
func (s *Service) Overview(ctx context.Context) (*AdminOverview, error) {
	items, err := store.ListItems(ctx, s.DB, store.ItemFilter{})
	if err != nil {
		return nil, err
	}
	claims, err := store.ListRecentClaims(ctx, s.DB, RecentClaimsLimit)
	if err != nil {
		return nil, err
	}
	return &AdminOverview{Items: items, Claims: claims}, nil
}

// Stats returns the home page counters.
func (s *Service) Stats(ctx context.Context) (*model.ItemStats, error) {
	return store.GetItemStats(ctx, s.DB)
}
