package ports

import (
	"context"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// CharacterGenerator produces new character drafts.
type CharacterGenerator interface {
	// GenerateCharacter returns a draft inspired by hint. An empty hint lets the model choose freely.
	GenerateCharacter(ctx context.Context, hint string) (*entities.Draft, error)
}
