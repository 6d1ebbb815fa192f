package ports

import "context"

// CollectionManager handles the lifecycle of the vector collection backing a CharacterIndex.
type CollectionManager interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection drops the collection and every indexed character.
	DeleteCollection(ctx context.Context) error
}
