// Package identity provides owner identity providers.
package identity

import (
	"context"
	"errors"
	"strings"
)

// Fixed always resolves to the same owner. It stands in for a real identity
// provider until authentication exists.
type Fixed struct {
	id string
}

// NewFixed creates a Fixed provider for id.
func NewFixed(id string) (*Fixed, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("owner id is required")
	}
	return &Fixed{id: id}, nil
}

// OwnerID implements ports.OwnerProvider.
func (f *Fixed) OwnerID(ctx context.Context) (string, error) {
	return f.id, nil
}
