// Package ports defines the interfaces the favorites domain depends on.
package ports

import (
	"context"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// FavoritesTable is the persistence collaborator behind the favorites store client.
// Implementations map each method onto a single statement against the saved_characters table.
type FavoritesTable interface {
	// EnsureSchema creates or migrates the table if needed.
	EnsureSchema(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error

	// SelectByOwner returns every row for ownerID ordered by created_at descending.
	SelectByOwner(ctx context.Context, ownerID string) ([]entities.SavedCharacter, error)

	// FindDuplicate returns the id of a row matching the dedupe key, or "" when none exists.
	FindDuplicate(ctx context.Context, ownerID, name, enclaveName string) (string, error)

	// Insert stores row and returns it as persisted, including the assigned id and timestamp.
	Insert(ctx context.Context, row *entities.SavedCharacter) (*entities.SavedCharacter, error)

	// DeleteByID removes the row with id within ownerID's scope.
	// Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, ownerID, id string) error
}

// PayloadError carries a structured error reported by the backing store.
// Table adapters return it so the store client can surface the store's own message.
type PayloadError struct {
	Message string
	Details string
	Code    string
	Err     error
}

func (e *PayloadError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
