package services

import (
	"context"
	"fmt"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

// GeneratorService drafts new characters with an LLM.
type GeneratorService struct {
	llm ports.CharacterGenerator
}

// NewGeneratorService creates a new generator service.
func NewGeneratorService(llm ports.CharacterGenerator) *GeneratorService {
	return &GeneratorService{llm: llm}
}

// Generate returns a draft that passes the same validation as a save.
func (s *GeneratorService) Generate(ctx context.Context, hint string) (*entities.Draft, error) {
	draft, err := s.llm.GenerateCharacter(ctx, hint)
	if err != nil {
		return nil, fmt.Errorf("generating character: %w", err)
	}
	if draft == nil {
		return nil, fmt.Errorf("generating character: empty response")
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("generated character is incomplete: %w", err)
	}
	return draft, nil
}
