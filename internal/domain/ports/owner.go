package ports

import "context"

// OwnerProvider resolves the identity that scopes favorites.
type OwnerProvider interface {
	OwnerID(ctx context.Context) (string, error)
}
