package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/campuslf/lostfound/internal/model"
)

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Svc.Stats(r.Context())
	if err != nil {
		slog.Error("failed to load stats", "error", err)
		stats = &model.ItemStats{}
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Stats *model.ItemStats
	}{
		PageData: s.page(w, r, "Home"),
		Stats:    stats,
	})
}

// FAQPage handles GET /faq.
func (s *Server) FAQPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "faq.html", &struct {
		PageData
		Body template.HTML
	}{
		PageData: s.page(w, r, "FAQ"),
		Body:     s.FAQ,
	})
}
