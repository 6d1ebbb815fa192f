package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/mocks"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
	embedder "github.com/ersonp/enclave-favorites/internal/infrastructure/embedder/openai"
)

func TestInitHandler_Handle(t *testing.T) {
	t.Run("with collection manager", func(t *testing.T) {
		index := &mocks.CharacterIndex{}
		handler := NewInitHandler(&mocks.FavoritesTable{}, index)

		result, err := handler.Handle(context.Background(), "/tmp/.enclave/config.yaml", "enclave_favorites")
		require.NoError(t, err)
		assert.Equal(t, "enclave_favorites", result.CollectionName)
		assert.Equal(t, 1, index.EnsureCollectionCallCount)
		assert.Equal(t, uint64(embedder.VectorSize), index.LastVectorSize)
	})

	t.Run("without collection manager", func(t *testing.T) {
		handler := NewInitHandler(&mocks.FavoritesTable{}, nil)

		result, err := handler.Handle(context.Background(), "cfg", "unused")
		require.NoError(t, err)
		assert.Empty(t, result.CollectionName)
	})

	t.Run("collection failure", func(t *testing.T) {
		index := &mocks.CharacterIndex{EnsureCollectionErr: errors.New("qdrant down")}
		handler := NewInitHandler(&mocks.FavoritesTable{}, index)

		_, err := handler.Handle(context.Background(), "cfg", "c")
		assert.ErrorContains(t, err, "creating collection")
	})
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, config.ConfigFilePath(dir), path)

	_, err = WriteConfig(dir)
	assert.ErrorContains(t, err, "already initialized")
}
