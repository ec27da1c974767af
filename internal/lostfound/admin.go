package lostfound

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
)

// EnsureAdmin creates the admin credential on first start. It reports
// whether a credential was created; an existing one is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := store.GetAdmin(ctx, s.DB)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := s.hash(password)
	if err != nil {
		return false, err
	}
	return store.CreateAdminIfMissing(ctx, s.DB, strings.TrimSpace(username), hash)
}

// Authenticate checks a login attempt against the admin credential.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	admin, err := store.GetAdmin(ctx, s.DB)
	if err != nil {
		return err
	}
	if admin == nil {
		return model.Errorf(model.ErrAuth, "Invalid credentials.")
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(admin.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return model.Errorf(model.ErrAuth, "Invalid credentials.")
	}
	return nil
}

// ChangePassword replaces the admin password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	admin, err := store.GetAdmin(ctx, s.DB)
	if err != nil {
		return err
	}
	if admin == nil {
		return model.Errorf(model.ErrNotFound, "Admin account does not exist.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(current)); err != nil {
		return model.Errorf(model.ErrAuth, "Current password is incorrect.")
	}
	if err := model.ValidatePassword(newPassword); err != nil {
		return err
	}
	if newPassword != confirm {
		return model.Errorf(model.ErrValidation, "New password and confirm password do not match.")
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	return store.UpdateAdminPassword(ctx, s.DB, hash)
}

func (s *Service) hash(password string) (string, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.Errorf(model.ErrValidation, "Password must be at most 72 bytes.")
	}
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
