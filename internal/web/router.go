package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/campuslf/lostfound/internal/lostfound"
	"github.com/campuslf/lostfound/internal/model"
	webembed "github.com/campuslf/lostfound/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(svc *lostfound.Service, secret string, maxUploadBytes int64) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	var faq bytes.Buffer
	if err := goldmark.Convert(webembed.FAQMarkdown(), &faq); err != nil {
		return nil, fmt.Errorf("rendering faq: %w", err)
	}

	s := &Server{
		Svc:            svc,
		Templates:      templates,
		Secret:         secret,
		MaxUploadBytes: maxUploadBytes,
		FAQ:            template.HTML(faq.String()),
	}

	mux := http.NewServeMux()
	admin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(h) }

	// Static assets and uploaded photos.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(webembed.StaticFS())))
	mux.Handle("GET /uploads/{filename}", s.uploadHandler())

	// Public pages.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /faq", s.FAQPage)
	mux.HandleFunc("GET /browse", s.BrowsePage)
	mux.HandleFunc("GET /map", s.MapPage)
	mux.HandleFunc("GET /report-found", s.ReportPage)
	mux.HandleFunc("POST /report-found", s.ReportSubmit)
	mux.HandleFunc("GET /claim/{id}", s.ClaimPage)
	mux.HandleFunc("POST /claim/{id}", s.ClaimSubmit)
	mux.HandleFunc("GET /feedback", s.FeedbackPage)
	mux.HandleFunc("POST /feedback", s.FeedbackSubmit)

	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Admin routes.
	mux.Handle("GET /admin", admin(s.AdminPage))
	mux.Handle("GET /admin/change-password", admin(s.ChangePasswordPage))
	mux.Handle("POST /admin/change-password", admin(s.ChangePasswordSubmit))
	mux.Handle("GET /admin/item/{id}", admin(s.ItemDetailPage))
	mux.Handle("POST /admin/item/{id}/approve", admin(s.ItemApprove))
	mux.Handle("POST /admin/item/{id}/mark-claimed", admin(s.ItemMarkClaimed))
	mux.Handle("POST /admin/item/{id}/delete", admin(s.ItemDelete))
	mux.Handle("POST /admin/review/{id}/delete", admin(s.ReviewDelete))

	return SessionMiddleware(secret, svc.DB)(mux), nil
}

// uploadHandler serves stored photos by exact filename.
func (s *Server) uploadHandler() http.Handler {
	files := http.FileServerFS(s.Svc.Uploads.FS())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("filename")
		if name == "" || strings.HasPrefix(name, ".") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + name
		files.ServeHTTP(w, r2)
	})
}

// pathID parses the {id} path value, answering 404 when it is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// fail turns a service error into a flash and a redirect to back, or a 500
// for anything that is not the visitor's fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, back string) {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrAuth), errors.Is(err, model.ErrNotFound):
		setFlash(w, flashError, model.Message(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) success(w http.ResponseWriter, r *http.Request, message, next string) {
	setFlash(w, flashSuccess, message)
	http.Redirect(w, r, next, http.StatusSeeOther)
}
