package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
)

// GenerateHandler drafts a character and optionally saves it through the favorites API.
type GenerateHandler struct {
	generator *services.GeneratorService
	favorites ports.FavoritesAPI
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(generator *services.GeneratorService, favorites ports.FavoritesAPI) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		favorites: favorites,
	}
}

// GenerateOptions controls generation.
type GenerateOptions struct {
	Hint           string
	Save           bool
	AllowDuplicate bool
}

// GenerateResult contains the generated draft and, when saved, the create outcome.
type GenerateResult struct {
	Draft *entities.Draft
	Saved *entities.CreateResult
}

// Handle generates a character.
func (h *GenerateHandler) Handle(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	draft, err := h.generator.Generate(ctx, opts.Hint)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Draft: draft}
	if !opts.Save {
		return result, nil
	}

	saved, err := h.favorites.Create(ctx, entities.CreateRequest{Draft: *draft, AllowDuplicate: opts.AllowDuplicate})
	if err != nil {
		return nil, fmt.Errorf("saving generated character: %w", err)
	}
	result.Saved = saved

	return result, nil
}
