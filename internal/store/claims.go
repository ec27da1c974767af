package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campuslf/lostfound/internal/model"
)

// CreateClaim records a claim against an item.
func CreateClaim(ctx context.Context, db *sql.DB, itemID int64, studentName, email, message string) (*model.Claim, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, student_name, email, message) VALUES (?, ?, ?, ?)`,
		itemID, studentName, email, message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// GetClaim returns a claim by ID, or nil if it does not exist.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	c := &model.Claim{}
	err := db.QueryRowContext(ctx,
		`SELECT c.id, c.item_id, c.student_name, c.email, c.message, c.created_at, f.title
		 FROM claims c
		 JOIN found_items f ON f.id = c.item_id
		 WHERE c.id = ?`, id,
	).Scan(&c.ID, &c.ItemID, &c.StudentName, &c.Email, &c.Message, timestamp{&c.CreatedAt}, &c.ItemTitle)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	return c, nil
}

// ListRecentClaims returns the newest claims with their item titles.
func ListRecentClaims(ctx context.Context, db *sql.DB, limit int) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.item_id, c.student_name, c.email, c.message, c.created_at, f.title
		 FROM claims c
		 JOIN found_items f ON f.id = c.item_id
		 ORDER BY c.id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

// ListItemClaims returns all claims for one item, newest first.
func ListItemClaims(ctx context.Context, db *sql.DB, itemID int64) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.item_id, c.student_name, c.email, c.message, c.created_at, f.title
		 FROM claims c
		 JOIN found_items f ON f.id = c.item_id
		 WHERE c.item_id = ?
		 ORDER BY c.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		if err := rows.Scan(&c.ID, &c.ItemID, &c.StudentName, &c.Email, &c.Message, timestamp{&c.CreatedAt}, &c.ItemTitle); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
