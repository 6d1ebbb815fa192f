package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/mocks"
)

func TestGeneratorService_Generate(t *testing.T) {
	complete := ilyraDraft()
	incomplete := ilyraDraft()
	incomplete.EnclaveHook = ""

	tests := []struct {
		name    string
		llm     *mocks.CharacterGenerator
		wantErr bool
	}{
		{name: "valid draft", llm: &mocks.CharacterGenerator{Draft: &complete}},
		{name: "llm error", llm: &mocks.CharacterGenerator{Err: errors.New("rate limited")}, wantErr: true},
		{name: "nil draft", llm: &mocks.CharacterGenerator{}, wantErr: true},
		{name: "incomplete draft", llm: &mocks.CharacterGenerator{Draft: &incomplete}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGeneratorService(tt.llm)

			draft, err := svc.Generate(context.Background(), "a sea witch")
			assert.Equal(t, "a sea witch", tt.llm.LastHint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ilyra", draft.Name)
		})
	}
}

func TestGeneratorService_IncompleteDraftIsValidationError(t *testing.T) {
	d := entities.Draft{Name: "Aria"}
	svc := NewGeneratorService(&mocks.CharacterGenerator{Draft: &d})

	_, err := svc.Generate(context.Background(), "")

	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}
