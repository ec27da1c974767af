package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campuslf/lostfound/internal/auth"
	"github.com/campuslf/lostfound/internal/model"
	"github.com/campuslf/lostfound/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &struct{ PageData }{s.page(w, r, "Admin Login")})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if err := s.Svc.Authenticate(r.Context(), username, password); err != nil {
		if errors.Is(err, model.ErrAuth) {
			slog.Warn("login rejected", "username", username, "remote", r.RemoteAddr)
		}
		s.fail(w, r, err, "/login")
		return
	}

	token, _, err := auth.NewSession(s.Secret)
	if err != nil {
		s.fail(w, r, err, "/login")
		return
	}

	setSessionCookie(w, token)
	slog.Info("admin logged in", "remote", r.RemoteAddr)
	s.success(w, r, "Logged in as admin.", "/admin")
}

// Logout handles GET /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())
	if sess.ID != "" {
		if err := store.RevokeSession(r.Context(), s.Svc.DB, sess.ID, sess.ExpiresAt); err != nil {
			slog.Error("failed to revoke session", "error", err)
		}
	}

	clearSessionCookie(w)
	s.success(w, r, "You have been logged out.", "/")
}
