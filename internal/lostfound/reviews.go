package lostfound

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
)

// ParseRating converts a form value to a rating. Anything that is not an
// integer between MinRating and MaxRating becomes DefaultRating.
func ParseRating(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < model.MinRating || n > model.MaxRating {
		return model.DefaultRating
	}
	return n
}

// SubmitReview stores an anonymous review.
func (s *Service) SubmitReview(ctx context.Context, message, rating string) (*model.Review, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, model.Errorf(model.ErrValidation, "Please write a review before submitting.")
	}
	if utf8.RuneCountInString(message) > s.MaxReviewLength() {
		return nil, model.Errorf(model.ErrValidation, "Review must be %d characters or fewer.", s.MaxReviewLength())
	}

	return store.CreateReview(ctx, s.DB, message, ParseRating(rating))
}

// Reviews lists all reviews, newest first.
func (s *Service) Reviews(ctx context.Context) ([]model.Review, error) {
	return store.ListReviews(ctx, s.DB)
}

// DeleteReview removes a review. Missing reviews are not an error.
func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	return store.DeleteReview(ctx, s.DB, id)
}

// MaxReviewLength is the review length limit in effect, in characters.
func (s *Service) MaxReviewLength() int {
	if s.MaxReviewLen > 0 {
		return s.MaxReviewLen
	}
	return model.DefaultMaxReviewLen
}
