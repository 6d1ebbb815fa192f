package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// SearchService indexes saved characters into a vector index and searches them.
// Indexing is explicit; creating or removing a favorite never touches the index.
type SearchService struct {
	favorites *FavoritesService
	embedder  ports.Embedder
	index     ports.CharacterIndex
}

// NewSearchService creates a new search service.
func NewSearchService(favorites *FavoritesService, embedder ports.Embedder, index ports.CharacterIndex) *SearchService {
	return &SearchService{
		favorites: favorites,
		embedder:  embedder,
		index:     index,
	}
}

// Reindex replaces ownerID's index entries with an embedding of every current favorite.
// It returns the number of characters written.
func (s *SearchService) Reindex(ctx context.Context, ownerID string) (int, error) {
	rows, err := s.favorites.List(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	// Rebuild from scratch so removed favorites drop out of search.
	if err := s.index.DeleteByOwner(ctx, ownerID); err != nil {
		return 0, fmt.Errorf("clearing index: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	texts := make([]string, len(rows))
	for i := range rows {
		texts[i] = IndexText(&rows[i])
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(rows) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(rows))
	}

	items := make([]ports.IndexedCharacter, len(rows))
	for i := range rows {
		items[i] = ports.IndexedCharacter{
			ID:          rows[i].ID,
			OwnerID:     rows[i].OwnerID,
			Name:        rows[i].Name,
			EnclaveName: rows[i].EnclaveName,
			Text:        texts[i],
			Embedding:   embeddings[i],
		}
	}

	if err := s.index.Upsert(ctx, items); err != nil {
		return 0, fmt.Errorf("upserting characters: %w", err)
	}

	return len(items), nil
}

// Search finds ownerID's characters semantically similar to query.
func (s *SearchService) Search(ctx context.Context, ownerID, query string, limit int) ([]ports.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	hits, err := s.index.Search(ctx, ownerID, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching characters: %w", err)
	}

	return hits, nil
}

// Forget removes ids from the index.
func (s *SearchService) Forget(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.index.Delete(ctx, ids); err != nil {
		return fmt.Errorf("deleting indexed characters: %w", err)
	}
	return nil
}

// IndexText builds the text embedded for a character.
func IndexText(c *entities.SavedCharacter) string {
	var b strings.Builder
	b.WriteString(c.Name)
	if c.Epithet != nil {
		b.WriteString(", " + *c.Epithet)
	}
	b.WriteString(". Enclave " + c.EnclaveName + ": " + c.EnclaveSummary + " " + c.EnclaveHook)
	if c.SpiritName != nil {
		b.WriteString(" Spirit " + *c.SpiritName + ".")
	}
	if c.SpiritSummary != nil {
		b.WriteString(" " + *c.SpiritSummary)
	}
	for _, line := range c.Lore {
		b.WriteString(" " + line)
	}
	return b.String()
}
