package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campuslf/lostfound/internal/model"
)

// CreateAdminIfMissing stores the admin credential unless one already
// exists. It reports whether the row was created. INSERT OR IGNORE keeps
// concurrent first starts from racing each other.
func CreateAdminIfMissing(ctx context.Context, db *sql.DB, username, passwordHash string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO admin_credential (id, username, password_hash) VALUES (1, ?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("creating admin credential: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking admin credential insert: %w", err)
	}
	return n > 0, nil
}

// GetAdmin returns the admin credential, or nil if none exists yet.
func GetAdmin(ctx context.Context, db *sql.DB) (*model.AdminCredential, error) {
	a := &model.AdminCredential{}
	err := db.QueryRowContext(ctx,
		`SELECT username, password_hash, updated_at FROM admin_credential WHERE id = 1`,
	).Scan(&a.Username, &a.PasswordHash, timestamp{&a.UpdatedAt})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin credential: %w", err)
	}
	return a, nil
}

// UpdateAdminPassword replaces the admin password hash.
func UpdateAdminPassword(ctx context.Context, db *sql.DB, passwordHash string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE admin_credential SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		passwordHash,
	)
	if err != nil {
		return fmt.Errorf("updating admin password: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("updating admin password: %w", model.ErrNotFound)
	}
	return nil
}
