package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/campuslf/lostfound/internal/lostfound"
	"github.com/campuslf/lostfound/internal/model"
	webembed "github.com/campuslf/lostfound/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("Jan 2, 2006 3:04 PM")
		},
		"photoURL": func(name string) string {
			return "/uploads/" + url.PathEscape(name)
		},
		"statusName": func(status string) string {
			switch status {
			case model.ItemStatusPending:
				return "Pending review"
			case model.ItemStatusApproved:
				return "Available"
			case model.ItemStatusClaimed:
				return "Claimed"
			default:
				return status
			}
		},
		"stars": func(n int) string {
			s := ""
			for i := 1; i <= model.MaxRating; i++ {
				if i <= n {
					s += "★"
				} else {
					s += "☆"
				}
			}
			return s
		},
		"percent": func(part, total int) int {
			if total == 0 {
				return 0
			}
			return part * 100 / total
		},
	}
}

var pages = []string{
	"home.html",
	"faq.html",
	"browse.html",
	"report_found.html",
	"claim.html",
	"map.html",
	"feedback.html",
	"login.html",
	"admin.html",
	"admin_item.html",
	"admin_change_password.html",
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	IsAdmin bool
	Flash   *Flash
}

// Server holds all dependencies for page handlers.
type Server struct {
	Svc            *lostfound.Service
	Templates      *Templates
	Secret         string
	MaxUploadBytes int64
	FAQ            template.HTML
}

// page builds the base page data for a request and consumes its flash.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title string) PageData {
	return PageData{
		Title:   title,
		IsAdmin: GetSession(r.Context()).Admin,
		Flash:   popFlash(w, r),
	}
}
