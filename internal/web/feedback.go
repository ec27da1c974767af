package web

import (
	"log/slog"
	"net/http"

	"github.com/campuslf/lostfound/internal/model"
)

// FeedbackPage handles GET /feedback.
func (s *Server) FeedbackPage(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.Svc.Reviews(r.Context())
	if err != nil {
		slog.Error("failed to list reviews", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "feedback.html", &struct {
		PageData
		Reviews   []model.Review
		MaxLen    int
		MaxRating int
	}{
		PageData:  s.page(w, r, "Feedback"),
		Reviews:   reviews,
		MaxLen:    s.Svc.MaxReviewLength(),
		MaxRating: model.MaxRating,
	})
}

// FeedbackSubmit handles POST /feedback.
func (s *Server) FeedbackSubmit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Svc.SubmitReview(r.Context(), r.FormValue("message"), r.FormValue("rating")); err != nil {
		s.fail(w, r, err, "/feedback")
		return
	}
	s.success(w, r, "Thanks! Your anonymous review was posted.", "/feedback")
}

// ReviewDelete handles POST /admin/review/{id}/delete.
func (s *Server) ReviewDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Svc.DeleteReview(r.Context(), id); err != nil {
		s.fail(w, r, err, "/feedback")
		return
	}
	slog.Info("review deleted", "review", id)
	s.success(w, r, "Review deleted.", "/feedback")
}
