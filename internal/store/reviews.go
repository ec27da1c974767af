package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campuslf/lostfound/internal/model"
)

// CreateReview stores an anonymous review.
func CreateReview(ctx context.Context, db *sql.DB, message string, rating int) (*model.Review, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO reviews (message, rating) VALUES (?, ?)`, message, rating,
	)
	if err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting review id: %w", err)
	}

	return GetReview(ctx, db, id)
}

// GetReview returns a review by ID, or nil if it does not exist.
func GetReview(ctx context.Context, db *sql.DB, id int64) (*model.Review, error) {
	r := &model.Review{}
	err := db.QueryRowContext(ctx,
		`SELECT id, message, rating, created_at FROM reviews WHERE id = ?`, id,
	).Scan(&r.ID, &r.Message, &r.Rating, timestamp{&r.CreatedAt})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting review: %w", err)
	}
	return r, nil
}

// ListReviews returns all reviews, newest first.
func ListReviews(ctx context.Context, db *sql.DB) ([]model.Review, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, message, rating, created_at FROM reviews ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.Message, &r.Rating, timestamp{&r.CreatedAt}); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// DeleteReview removes a review. Missing reviews are not an error.
func DeleteReview(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	return nil
}
