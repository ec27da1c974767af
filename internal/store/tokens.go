package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RevokeSession blocks a session id until expiresAt, after which the token
// is rejected by its own expiry anyway. Revoking again keeps the later
// expiry. Entries that have already lapsed are pruned on the way.
func RevokeSession(ctx context.Context, db *sql.DB, jti string, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO revoked_sessions (jti, expires_at) VALUES (?, ?)
		 ON CONFLICT (jti) DO UPDATE SET expires_at = max(expires_at, excluded.expires_at)`,
		jti, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}

	if _, err := PruneRevokedSessions(ctx, db, time.Now()); err != nil {
		return err
	}
	return nil
}

// PruneRevokedSessions deletes revocations that expired before now and
// reports how many were removed.
func PruneRevokedSessions(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM revoked_sessions WHERE expires_at < ?`, now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning revoked sessions: %w", err)
	}
	return res.RowsAffected()
}

// IsSessionRevoked reports whether the session id was logged out.
func IsSessionRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var revoked bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE jti = ?)`, jti,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("checking session revocation: %w", err)
	}
	return revoked, nil
}
