package web

import (
	"log/slog"
	"net/http"

	"github.com/campuslf/lostfound/internal/lostfound"
	"github.com/campuslf/lostfound/internal/model"
)

// AdminPage handles GET /admin.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	overview, err := s.Svc.Overview(r.Context())
	if err != nil {
		slog.Error("failed to load admin overview", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "admin.html", &struct {
		PageData
		*lostfound.AdminOverview
	}{
		PageData:      s.page(w, r, "Admin"),
		AdminOverview: overview,
	})
}

// ItemDetailPage handles GET /admin/item/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, claims, err := s.Svc.ItemClaims(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "/admin")
		return
	}

	s.Templates.Render(w, "admin_item.html", &struct {
		PageData
		Item   *model.FoundItem
		Claims []model.Claim
	}{
		PageData: s.page(w, r, item.Title),
		Item:     item,
		Claims:   claims,
	})
}

// ItemApprove handles POST /admin/item/{id}/approve.
func (s *Server) ItemApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Svc.Approve(r.Context(), id); err != nil {
		s.fail(w, r, err, "/admin")
		return
	}
	slog.Info("item approved", "item", id)
	s.success(w, r, "Item approved.", "/admin")
}

// ItemMarkClaimed handles POST /admin/item/{id}/mark-claimed.
func (s *Server) ItemMarkClaimed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Svc.MarkClaimed(r.Context(), id); err != nil {
		s.fail(w, r, err, "/admin")
		return
	}
	slog.Info("item marked claimed", "item", id)
	s.success(w, r, "Marked as claimed.", "/admin")
}

// ItemDelete handles POST /admin/item/{id}/delete.
func (s *Server) ItemDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Svc.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "/admin")
		return
	}
	slog.Info("item deleted", "item", id)
	s.success(w, r, "Item deleted.", "/admin")
}

// ChangePasswordPage handles GET /admin/change-password.
func (s *Server) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "admin_change_password.html", &struct{ PageData }{s.page(w, r, "Change Password")})
}

// ChangePasswordSubmit handles POST /admin/change-password.
func (s *Server) ChangePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.Svc.ChangePassword(r.Context(),
		r.FormValue("current_password"),
		r.FormValue("new_password"),
		r.FormValue("confirm_password"),
	)
	if err != nil {
		s.fail(w, r, err, "/admin/change-password")
		return
	}
	slog.Info("admin password changed")
	s.success(w, r, "Password updated successfully.", "/admin")
}
