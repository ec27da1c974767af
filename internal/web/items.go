package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/campuslf/lostfound/internal/location"
	"github.com/campuslf/lostfound/internal/lostfound"
	"github.com/campuslf/lostfound/internal/model"
)

// BrowsePage handles GET /browse.
func (s *Server) BrowsePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	items, err := s.Svc.Browse(r.Context(), q, category)
	if err != nil {
		slog.Error("failed to browse items", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	categories, err := s.Svc.Categories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}

	s.Templates.Render(w, "browse.html", &struct {
		PageData
		Items      []model.FoundItem
		Categories []string
		Query      string
		Category   string
	}{
		PageData:   s.page(w, r, "Browse"),
		Items:      items,
		Categories: categories,
		Query:      q,
		Category:   category,
	})
}

// MapPage handles GET /map.
func (s *Server) MapPage(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Svc.MapGroups(r.Context())
	if err != nil {
		slog.Error("failed to build map", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "map.html", &struct {
		PageData
		Groups []lostfound.MapGroup
	}{
		PageData: s.page(w, r, "Map"),
		Groups:   groups,
	})
}

// ReportPage handles GET /report-found.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "report_found.html", &struct {
		PageData
		Locations []location.Location
	}{
		PageData:  s.page(w, r, "Report Found Item"),
		Locations: s.Svc.Locations.Selectable(),
	})
}

// ReportSubmit handles POST /report-found.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	if s.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, model.Errorf(model.ErrValidation, "Upload is too large."), "/report-found")
			return
		}
		s.fail(w, r, model.Errorf(model.ErrValidation, "Could not read the submitted form."), "/report-found")
		return
	}

	in := lostfound.ReportInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		LocationID:  r.FormValue("location_id"),
		DateFound:   r.FormValue("date_found"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			s.fail(w, r, fmt.Errorf("reading photo: %w", err), "/report-found")
			return
		}
		in.Photo = &lostfound.Upload{Filename: header.Filename, Data: data}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		s.fail(w, r, fmt.Errorf("reading photo: %w", err), "/report-found")
		return
	}

	item, err := s.Svc.Report(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "/report-found")
		return
	}

	slog.Info("item reported", "item", item.ID, "location", item.LocationID)
	s.success(w, r, "Submitted! An admin will review and approve your post.", "/browse")
}

// ClaimPage handles GET /claim/{id}.
func (s *Server) ClaimPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.Svc.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "/browse")
		return
	}

	s.Templates.Render(w, "claim.html", &struct {
		PageData
		Item *model.FoundItem
	}{
		PageData: s.page(w, r, "Claim Item"),
		Item:     item,
	})
}

// ClaimSubmit handles POST /claim/{id}.
func (s *Server) ClaimSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	_, err := s.Svc.SubmitClaim(r.Context(), id, lostfound.ClaimInput{
		StudentName: r.FormValue("student_name"),
		Email:       r.FormValue("email"),
		Message:     r.FormValue("message"),
	})
	if err != nil {
		back := fmt.Sprintf("/claim/%d", id)
		if errors.Is(err, model.ErrNotFound) {
			back = "/browse"
		}
		s.fail(w, r, err, back)
		return
	}

	slog.Info("claim submitted", "item", id)
	s.success(w, r, "Request sent! The admin will follow up soon.", "/browse")
}
