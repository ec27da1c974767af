package api

import (
	"net/http"

	"github.com/campuslf/lostfound/internal/lostfound"
)

// NewRouter creates the API router with all endpoints registered. Every
// endpoint is read-only and public, so only approved or claimed items are
// ever exposed.
func NewRouter(svc *lostfound.Service) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Svc: svc}

	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/categories", itemsHandler.Categories)
	mux.HandleFunc("GET /api/map", itemsHandler.Map)
	mux.HandleFunc("GET /api/locations", itemsHandler.Locations)
	mux.HandleFunc("GET /api/stats", itemsHandler.Stats)

	return mux
}
