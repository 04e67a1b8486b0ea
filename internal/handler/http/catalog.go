package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamify/storefront/internal/catalog"
	"github.com/gamify/storefront/pkg/httputil"
)

// CatalogHandler serves the static game and bundle catalog.
type CatalogHandler struct {
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

// ListGames handles GET /api/v1/catalog
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: catalog.Games()})
}

// GetGame handles GET /api/v1/catalog/{gameId}
func (h *CatalogHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := catalog.GetGame(chi.URLParam(r, "gameId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: game})
}
