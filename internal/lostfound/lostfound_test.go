package lostfound

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslf/lostfound/internal/db"
	"github.com/campuslf/lostfound/internal/location"
	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
	"github.com/campuslf/lostfound/internal/uploads"
	webembed "github.com/campuslf/lostfound/web"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	up, err := uploads.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	locs, err := location.Parse(webembed.LocationsYAML())
	require.NoError(t, err)

	s := New(db.NewTestDB(t), up, locs)
	s.HashCost = bcrypt.MinCost
	return s
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{0, 128, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func validReport() ReportInput {
	return ReportInput{
		Title:       "Black Umbrella",
		Category:    "Accessories",
		LocationID:  "gym",
		DateFound:   "2024-10-03",
		Description: "Folding umbrella left on the bleachers",
	}
}

func report(t *testing.T, s *Service, title, locationID string) *model.FoundItem {
	t.Helper()
	in := validReport()
	in.Title = title
	in.LocationID = locationID
	item, err := s.Report(context.Background(), in)
	require.NoError(t, err)
	return item
}

func TestReportCreatesPendingItem(t *testing.T) {
	s := newTestService(t)

	item, err := s.Report(context.Background(), validReport())
	require.NoError(t, err)
	require.NotZero(t, item.ID)
	require.Equal(t, model.ItemStatusPending, item.Status)
	require.Equal(t, "Gym", item.LocationFound)
	require.Equal(t, "gym", item.LocationID)
	require.Empty(t, item.PhotoFilename)
}

func TestReportResolvesLocationName(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		locationID string
		wantName   string
		wantID     string
	}{
		{"media-center", "Media Center", "media-center"},
		{"1000-Hall", "1000 Hall", "1000-hall"},
		{"library", "library", "library"},
	}
	for _, tt := range tests {
		item := report(t, s, "Notebook", tt.locationID)
		require.Equal(t, tt.wantName, item.LocationFound, tt.locationID)
		require.Equal(t, tt.wantID, item.LocationID, tt.locationID)
	}
}

func TestReportRequiresAllFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	blanks := []func(*ReportInput){
		func(in *ReportInput) { in.Title = "" },
		func(in *ReportInput) { in.Category = "  " },
		func(in *ReportInput) { in.LocationID = "" },
		func(in *ReportInput) { in.DateFound = "" },
		func(in *ReportInput) { in.Description = "\t" },
	}
	for i, blank := range blanks {
		in := validReport()
		blank(&in)
		_, err := s.Report(ctx, in)
		require.ErrorIs(t, err, model.ErrValidation, "case %d", i)
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.TotalFound)
}

func TestReportWithPhoto(t *testing.T) {
	s := newTestService(t)

	in := validReport()
	in.Photo = &Upload{Filename: "My Umbrella.PNG", Data: testPNG(t)}

	item, err := s.Report(context.Background(), in)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(item.PhotoFilename, "_My_Umbrella.png"), item.PhotoFilename)
	require.NotContains(t, item.PhotoFilename, "/")

	data, err := os.ReadFile(filepath.Join(s.Uploads.Dir(), item.PhotoFilename))
	require.NoError(t, err)
	require.Equal(t, in.Photo.Data, data)
}

func TestReportRejectsUnsupportedPhoto(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	in := validReport()
	in.Photo = &Upload{Filename: "umbrella.gif", Data: testPNG(t)}
	_, err := s.Report(ctx, in)
	require.ErrorIs(t, err, model.ErrUnsupportedMedia)
	require.ErrorIs(t, err, model.ErrValidation)

	in.Photo = &Upload{Filename: "umbrella.png", Data: []byte("#!/bin/sh\necho hi\n")}
	_, err = s.Report(ctx, in)
	require.ErrorIs(t, err, model.ErrUnsupportedMedia)

	entries, err := os.ReadDir(s.Uploads.Dir())
	require.NoError(t, err)
	require.Empty(t, entries, "rejected photos must not be stored")
}

func TestReportIgnoresEmptyPhoto(t *testing.T) {
	s := newTestService(t)

	in := validReport()
	in.Photo = &Upload{}
	item, err := s.Report(context.Background(), in)
	require.NoError(t, err)
	require.Empty(t, item.PhotoFilename)
}

func TestBrowseShowsOnlyApproved(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	pending := report(t, s, "Pending Phone", "gym")
	approved := report(t, s, "Approved Phone", "gym")
	claimed := report(t, s, "Claimed Phone", "gym")
	require.NoError(t, s.Approve(ctx, approved.ID))
	require.NoError(t, s.Approve(ctx, claimed.ID))
	require.NoError(t, s.MarkClaimed(ctx, claimed.ID))

	items, err := s.Browse(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, approved.ID, items[0].ID)

	items, err = s.Browse(ctx, "phone", "")
	require.NoError(t, err)
	for _, it := range items {
		require.NotEqual(t, pending.ID, it.ID)
		require.NotEqual(t, claimed.ID, it.ID)
	}
}

func TestBrowseFilters(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	keys := report(t, s, "Car Keys", "student-parking")
	in := validReport()
	in.Title = "Headphones"
	in.Category = "Electronics"
	in.LocationID = "cafeteria"
	phones, err := s.Report(ctx, in)
	require.NoError(t, err)
	require.NoError(t, s.Approve(ctx, keys.ID))
	require.NoError(t, s.Approve(ctx, phones.ID))

	items, _ := s.Browse(ctx, "", "")
	require.Equal(t, []int64{phones.ID, keys.ID}, itemIDs(items))

	items, _ = s.Browse(ctx, "PARKING", "")
	require.Equal(t, []int64{keys.ID}, itemIDs(items))

	items, _ = s.Browse(ctx, "", "Electronics")
	require.Equal(t, []int64{phones.ID}, itemIDs(items))

	items, _ = s.Browse(ctx, "keys", "Electronics")
	require.Empty(t, items)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Accessories", "Electronics"}, categories)
}

func TestBrowseMatchesAccentedTextInAnyCase(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	scarf := report(t, s, "Écharpe rouge", "gym")
	require.NoError(t, s.Approve(ctx, scarf.ID))

	for _, q := range []string{"écharpe", "ÉCHARPE"} {
		items, err := s.Browse(ctx, q, "")
		require.NoError(t, err)
		require.Equal(t, []int64{scarf.ID}, itemIDs(items), "query %q", q)
	}
}

func itemIDs(items []model.FoundItem) []int64 {
	var ids []int64
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestStatusOverwritesArePermissive(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	item := report(t, s, "Scarf", "band")

	// Straight from pending to claimed is allowed.
	require.NoError(t, s.MarkClaimed(ctx, item.ID))
	got, _ := s.Get(ctx, item.ID)
	require.Equal(t, model.ItemStatusClaimed, got.Status)

	// And back to approved.
	require.NoError(t, s.Approve(ctx, item.ID))
	got, _ = s.Get(ctx, item.ID)
	require.Equal(t, model.ItemStatusApproved, got.Status)

	// Missing items succeed silently.
	require.NoError(t, s.Approve(ctx, 999))
	require.NoError(t, s.MarkClaimed(ctx, 999))
}

func TestDeleteRemovesClaimsAndPhoto(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	in := validReport()
	in.Photo = &Upload{Filename: "scarf.png", Data: testPNG(t)}
	item, err := s.Report(ctx, in)
	require.NoError(t, err)

	_, err = s.SubmitClaim(ctx, item.ID, ClaimInput{StudentName: "Ana", Email: "ana@school.edu", Message: "Mine"})
	require.NoError(t, err)
	_, err = s.SubmitClaim(ctx, item.ID, ClaimInput{StudentName: "Ben", Email: "ben@school.edu", Message: "Mine too"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, item.ID))

	_, err = s.Get(ctx, item.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	claims, err := store.ListItemClaims(ctx, s.DB, item.ID)
	require.NoError(t, err)
	require.Empty(t, claims)

	_, err = os.Stat(filepath.Join(s.Uploads.Dir(), item.PhotoFilename))
	require.True(t, os.IsNotExist(err), "expected photo to be removed")
}

func TestDeleteWithMissingPhoto(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	in := validReport()
	in.Photo = &Upload{Filename: "scarf.png", Data: testPNG(t)}
	item, err := s.Report(ctx, in)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(s.Uploads.Dir(), item.PhotoFilename)))

	require.NoError(t, s.Delete(ctx, item.ID))
	_, err = s.Get(ctx, item.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	// Deleting something that no longer exists is a no-op.
	require.NoError(t, s.Delete(ctx, item.ID))
}

func TestOverview(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a := report(t, s, "Hat", "gym")
	report(t, s, "Glove", "gym")
	_, err := s.SubmitClaim(ctx, a.ID, ClaimInput{StudentName: "Ana", Email: "ana@school.edu", Message: "Mine"})
	require.NoError(t, err)

	ov, err := s.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, ov.Items, 2)
	require.Len(t, ov.Claims, 1)
	require.Equal(t, "Hat", ov.Claims[0].ItemTitle)
}
