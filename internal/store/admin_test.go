package store

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslf/lostfound/internal/db"
	"github.com/campuslf/lostfound/internal/model"
)

func TestCreateAdminIfMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	admin, err := GetAdmin(ctx, database)
	if err != nil {
		t.Fatalf("GetAdmin: %v", err)
	}
	if admin != nil {
		t.Fatal("expected no admin before first start")
	}

	created, err := CreateAdminIfMissing(ctx, database, "admin", "hash-1")
	if err != nil {
		t.Fatalf("CreateAdminIfMissing: %v", err)
	}
	if !created {
		t.Error("expected admin to be created")
	}

	// A second start must not overwrite the stored credential.
	created, err = CreateAdminIfMissing(ctx, database, "other", "hash-2")
	if err != nil {
		t.Fatalf("second CreateAdminIfMissing: %v", err)
	}
	if created {
		t.Error("expected existing admin to be kept")
	}

	admin, _ = GetAdmin(ctx, database)
	if admin.Username != "admin" || admin.PasswordHash != "hash-1" {
		t.Errorf("unexpected admin %+v", admin)
	}
}

func TestUpdateAdminPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := UpdateAdminPassword(ctx, database, "hash")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without admin, got %v", err)
	}

	CreateAdminIfMissing(ctx, database, "admin", "hash-1")
	if err := UpdateAdminPassword(ctx, database, "hash-2"); err != nil {
		t.Fatalf("UpdateAdminPassword: %v", err)
	}

	admin, _ := GetAdmin(ctx, database)
	if admin.PasswordHash != "hash-2" {
		t.Errorf("expected updated hash, got %q", admin.PasswordHash)
	}
}
