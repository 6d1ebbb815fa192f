package ports

import (
	"context"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// FavoritesAPI is the owner-implicit surface consumed by the favorites view model.
// It can be served in-process or over HTTP.
type FavoritesAPI interface {
	// List returns the current owner's favorites, newest first.
	List(ctx context.Context) ([]entities.SavedCharacter, error)

	// Create saves a character. A skipped duplicate is a result, not an error.
	Create(ctx context.Context, req entities.CreateRequest) (*entities.CreateResult, error)

	// Delete removes a favorite by id.
	Delete(ctx context.Context, id string) error
}
