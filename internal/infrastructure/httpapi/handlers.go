package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

type favoritesHandlers struct {
	api ports.FavoritesAPI
}

func newFavoritesHandlers(api ports.FavoritesAPI) *favoritesHandlers {
	return &favoritesHandlers{api: api}
}

// list handles GET /api/v1/favorites.
func (h *favoritesHandlers) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.api.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []entities.SavedCharacter{}
	}
	RespondWithJSON(w, http.StatusOK, listResponse{Items: items})
}

// create handles POST /api/v1/favorites. A duplicate is a 200 with duplicated set.
func (h *favoritesHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.api.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicated {
		status = http.StatusOK
	}
	RespondWithJSON(w, status, result)
}

// remove handles DELETE /api/v1/favorites/{id}.
func (h *favoritesHandlers) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.api.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, deleteResponse{Success: true})
}
