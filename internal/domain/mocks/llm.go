package mocks

import (
	"context"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// CharacterGenerator is a mock implementation of ports.CharacterGenerator.
type CharacterGenerator struct {
	Draft *entities.Draft
	Err   error

	LastHint string
}

// GenerateCharacter returns the configured draft or error.
func (m *CharacterGenerator) GenerateCharacter(ctx context.Context, hint string) (*entities.Draft, error) {
	m.LastHint = hint
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Draft, nil
}
