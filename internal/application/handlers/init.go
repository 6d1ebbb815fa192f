package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
	embedder "github.com/ersonp/enclave-favorites/internal/infrastructure/embedder/openai"
)

// InitHandler handles project initialization.
type InitHandler struct {
	table             ports.FavoritesTable
	collectionManager ports.CollectionManager
}

// NewInitHandler creates a new init handler. collectionManager may be nil when search is not configured.
func NewInitHandler(table ports.FavoritesTable, collectionManager ports.CollectionManager) *InitHandler {
	return &InitHandler{
		table:             table,
		collectionManager: collectionManager,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	CollectionName string
}

// Handle prepares the favorites table and, when configured, the search collection.
// configPath and collection are reported back for display.
func (h *InitHandler) Handle(ctx context.Context, configPath, collection string) (*InitResult, error) {
	if err := h.table.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensuring favorites schema: %w", err)
	}

	result := &InitResult{ConfigPath: configPath}
	if h.collectionManager != nil {
		if err := h.collectionManager.EnsureCollection(ctx, embedder.VectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
		result.CollectionName = collection
	}

	return result, nil
}

// WriteConfig writes the default config unless one already exists.
func WriteConfig(basePath string) (string, error) {
	if config.Exists(basePath) {
		return "", fmt.Errorf("enclave already initialized in %s", basePath)
	}
	if err := config.WriteDefault(basePath); err != nil {
		return "", fmt.Errorf("writing default config: %w", err)
	}
	return config.ConfigFilePath(basePath), nil
}
