package ports

import "context"

// IndexedCharacter is a saved character as stored in the vector index.
type IndexedCharacter struct {
	ID          string
	OwnerID     string
	Name        string
	EnclaveName string
	Text        string
	Embedding   []float32
}

// SearchHit is one semantic search match.
type SearchHit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	EnclaveName string  `json:"enclave_name"`
	Score       float32 `json:"score"`
}

// CharacterIndex stores character embeddings for semantic lookup.
type CharacterIndex interface {
	// Upsert writes or replaces the given characters.
	Upsert(ctx context.Context, items []IndexedCharacter) error

	// Search returns the closest matches owned by ownerID.
	Search(ctx context.Context, ownerID string, embedding []float32, limit int) ([]SearchHit, error)

	// Delete removes characters by id.
	Delete(ctx context.Context, ids []string) error

	// DeleteByOwner removes every character owned by ownerID.
	DeleteByOwner(ctx context.Context, ownerID string) error
}
