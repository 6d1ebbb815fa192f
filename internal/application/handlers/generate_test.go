package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/mocks"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
)

func TestGenerateHandler_Handle(t *testing.T) {
	draft := ilyraRequest(false).Draft

	tests := []struct {
		name      string
		opts      GenerateOptions
		api       *mocks.FavoritesAPI
		wantSaved bool
		wantErr   bool
	}{
		{
			name: "draft only",
			opts: GenerateOptions{Hint: "tidal"},
			api:  &mocks.FavoritesAPI{},
		},
		{
			name:      "save",
			opts:      GenerateOptions{Save: true},
			api:       &mocks.FavoritesAPI{CreateResult: &entities.CreateResult{Item: &entities.SavedCharacter{ID: "fav-1"}, Message: entities.MessageSaved}},
			wantSaved: true,
		},
		{
			name:    "save fails",
			opts:    GenerateOptions{Save: true},
			api:     &mocks.FavoritesAPI{CreateErr: errors.New("down")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draft
			handler := NewGenerateHandler(services.NewGeneratorService(&mocks.CharacterGenerator{Draft: &d}), tt.api)

			result, err := handler.Handle(context.Background(), tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ilyra", result.Draft.Name)
			if tt.wantSaved {
				require.NotNil(t, result.Saved)
				require.Len(t, tt.api.Created, 1)
				assert.Equal(t, tt.opts.AllowDuplicate, tt.api.Created[0].AllowDuplicate)
			} else {
				assert.Nil(t, result.Saved)
				assert.Empty(t, tt.api.Created)
			}
		})
	}
}
