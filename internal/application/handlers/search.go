package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
)

// SearchHandler handles indexing and semantic search over favorites.
type SearchHandler struct {
	service *services.SearchService
	owners  ports.OwnerProvider
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *services.SearchService, owners ports.OwnerProvider) *SearchHandler {
	return &SearchHandler{
		service: service,
		owners:  owners,
	}
}

// SearchResult contains the result of a search.
type SearchResult struct {
	Query string            `json:"query"`
	Hits  []ports.SearchHit `json:"hits"`
}

// HandleIndex rebuilds the current owner's index entries and returns how many were written.
func (h *SearchHandler) HandleIndex(ctx context.Context) (int, error) {
	ownerID, err := h.owners.OwnerID(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolving owner: %w", err)
	}
	count, err := h.service.Reindex(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("indexing favorites: %w", err)
	}
	return count, nil
}

// HandleSearch finds the current owner's favorites matching query.
func (h *SearchHandler) HandleSearch(ctx context.Context, query string, limit int) (*SearchResult, error) {
	ownerID, err := h.owners.OwnerID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving owner: %w", err)
	}
	hits, err := h.service.Search(ctx, ownerID, query, limit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Query: query, Hits: hits}, nil
}

// HandleForget drops ids from the search index without touching the store.
func (h *SearchHandler) HandleForget(ctx context.Context, ids []string) error {
	return h.service.Forget(ctx, ids...)
}
