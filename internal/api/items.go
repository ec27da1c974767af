package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campuslf/lostfound/internal/lostfound"
	"github.com/campuslf/lostfound/internal/model"
)

// ItemsHandler serves the public item endpoints.
type ItemsHandler struct {
	Svc *lostfound.Service
}

// List handles GET /api/items?q=&category=.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.Browse(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if err != nil {
		internalError(w, r, "failed to list items", err)
		return
	}
	jsonList(w, items)
}

// Get handles GET /api/items/{id}. Pending items are reported as missing.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.Svc.Get(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) || (err == nil && item.Status == model.ItemStatusPending) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		internalError(w, r, "failed to get item", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Categories handles GET /api/categories.
func (h *ItemsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.Categories(r.Context())
	if err != nil {
		internalError(w, r, "failed to list categories", err)
		return
	}
	jsonList(w, categories)
}

// Map handles GET /api/map.
func (h *ItemsHandler) Map(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Svc.MapGroups(r.Context())
	if err != nil {
		internalError(w, r, "failed to build map", err)
		return
	}
	jsonList(w, groups)
}

// Locations handles GET /api/locations.
func (h *ItemsHandler) Locations(w http.ResponseWriter, r *http.Request) {
	jsonList(w, h.Svc.Locations.All())
}

// Stats handles GET /api/stats.
func (h *ItemsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		internalError(w, r, "failed to load stats", err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
