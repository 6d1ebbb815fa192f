package ports

import "context"

// Embedder turns character text into vectors for semantic search.
type Embedder interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
