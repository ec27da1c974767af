package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
)

const sessionSecretKey = "session_secret"

// GetSetting returns the value stored under key. ok is false when the key
// has never been set.
func GetSetting(ctx context.Context, db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return value, true, nil
}

// GetOrCreateSetting returns the value stored under key, storing the result
// of create first when the key is absent. When several processes race on a
// fresh database, the first insert wins and every caller gets that value.
func GetOrCreateSetting(ctx context.Context, db *sql.DB, key string, create func() (string, error)) (string, error) {
	if value, ok, err := GetSetting(ctx, db, key); err != nil || ok {
		return value, err
	}

	candidate, err := create()
	if err != nil {
		return "", fmt.Errorf("creating setting %s: %w", key, err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, candidate,
	); err != nil {
		return "", fmt.Errorf("storing setting %s: %w", key, err)
	}

	value, ok, err := GetSetting(ctx, db, key)
	if err == nil && !ok {
		err = fmt.Errorf("setting %s vanished after insert", key)
	}
	return value, err
}

// GetSessionSecret returns the persisted session signing secret, generating
// 32 random bytes on first use.
func GetSessionSecret(ctx context.Context, db *sql.DB) (string, error) {
	return GetOrCreateSetting(ctx, db, sessionSecretKey, func() (string, error) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		return hex.EncodeToString(buf), nil
	})
}
