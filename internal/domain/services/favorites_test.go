package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/mocks"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

func ilyraDraft() entities.Draft {
	return entities.Draft{
		Name:           "Ilyra",
		EnclaveName:    "Moonveil",
		EnclaveSummary: "A cloister of tidewatchers.",
		EnclaveHook:    "The tide has stopped.",
		Lore:           []string{"Born under a drowned moon."},
	}
}

func TestFavoritesService_CreateDedupe(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", ilyraDraft(), false)
	require.NoError(t, err)
	require.NotNil(t, first.Item)
	assert.False(t, first.Duplicated)
	assert.Equal(t, entities.MessageSaved, first.Message)
	assert.NotEmpty(t, first.Item.ID)
	assert.False(t, first.Item.CreatedAt.IsZero())

	second, err := svc.Create(ctx, "u1", ilyraDraft(), false)
	require.NoError(t, err)
	assert.True(t, second.Duplicated)
	assert.Nil(t, second.Item)
	assert.Equal(t, entities.MessageDuplicated, second.Message)

	assert.Equal(t, 1, table.Count())
	assert.Equal(t, 1, table.InsertCalls)
}

func TestFavoritesService_CreateAllowDuplicate(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", ilyraDraft(), false)
	require.NoError(t, err)

	result, err := svc.Create(ctx, "u1", ilyraDraft(), true)
	require.NoError(t, err)
	require.NotNil(t, result.Item)
	assert.False(t, result.Duplicated)

	assert.Equal(t, 2, table.Count())
	assert.Equal(t, 1, table.DuplicateCalls)
}

func TestFavoritesService_CreateDedupeIsOwnerScoped(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", ilyraDraft(), false)
	require.NoError(t, err)

	result, err := svc.Create(ctx, "u2", ilyraDraft(), false)
	require.NoError(t, err)
	assert.False(t, result.Duplicated)
	assert.Equal(t, 2, table.Count())
}

func TestFavoritesService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *entities.Draft)
		field  string
	}{
		{name: "missing name", mutate: func(d *entities.Draft) { d.Name = "" }, field: "name"},
		{name: "missing enclave name", mutate: func(d *entities.Draft) { d.EnclaveName = "" }, field: "enclave_name"},
		{name: "missing enclave summary", mutate: func(d *entities.Draft) { d.EnclaveSummary = " " }, field: "enclave_summary"},
		{name: "missing enclave hook", mutate: func(d *entities.Draft) { d.EnclaveHook = "" }, field: "enclave_hook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &mocks.FavoritesTable{}
			svc := NewFavoritesService(table, nil)

			draft := ilyraDraft()
			tt.mutate(&draft)

			result, err := svc.Create(context.Background(), "u1", draft, false)
			assert.Nil(t, result)

			var verr *entities.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)

			assert.Zero(t, table.DuplicateCalls)
			assert.Zero(t, table.InsertCalls)
		})
	}
}

func TestFavoritesService_CreateNormalizesOptionals(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)

	draft := ilyraDraft()
	draft.Nickname = entities.StringPtr("")
	draft.Lore = nil

	result, err := svc.Create(context.Background(), "u1", draft, false)
	require.NoError(t, err)
	require.NotNil(t, result.Item)

	assert.Nil(t, result.Item.Nickname)
	assert.NotNil(t, result.Item.Lore)
	assert.JSONEq(t, "{}", string(result.Item.Stats))
}

func TestFavoritesService_StoreErrors(t *testing.T) {
	payloadErr := &ports.PayloadError{Message: "relation does not exist", Details: "saved_characters"}

	tests := []struct {
		name        string
		table       *mocks.FavoritesTable
		call        func(svc *FavoritesService) error
		wantOp      string
		wantMessage string
		wantDetails string
	}{
		{
			name:  "list uses fallback message",
			table: &mocks.FavoritesTable{SelectErr: errors.New("connection refused")},
			call: func(svc *FavoritesService) error {
				_, err := svc.List(context.Background(), "u1")
				return err
			},
			wantOp:      OpList,
			wantMessage: "Failed to load favorites",
			wantDetails: "connection refused",
		},
		{
			name:  "list surfaces store payload",
			table: &mocks.FavoritesTable{SelectErr: payloadErr},
			call: func(svc *FavoritesService) error {
				_, err := svc.List(context.Background(), "u1")
				return err
			},
			wantOp:      OpList,
			wantMessage: "relation does not exist",
			wantDetails: "saved_characters",
		},
		{
			name:  "dedupe lookup failure",
			table: &mocks.FavoritesTable{DuplicateErr: errors.New("timeout")},
			call: func(svc *FavoritesService) error {
				_, err := svc.Create(context.Background(), "u1", ilyraDraft(), false)
				return err
			},
			wantOp:      OpDuplicate,
			wantMessage: "Failed to check for duplicates",
			wantDetails: "timeout",
		},
		{
			name:  "insert failure",
			table: &mocks.FavoritesTable{InsertErr: errors.New("disk full")},
			call: func(svc *FavoritesService) error {
				_, err := svc.Create(context.Background(), "u1", ilyraDraft(), false)
				return err
			},
			wantOp:      OpCreate,
			wantMessage: "Failed to save favorite",
			wantDetails: "disk full",
		},
		{
			name:  "delete failure",
			table: &mocks.FavoritesTable{DeleteErr: errors.New("network down")},
			call: func(svc *FavoritesService) error {
				return svc.Remove(context.Background(), "u1", "fav-1")
			},
			wantOp:      OpRemove,
			wantMessage: "Failed to delete favorite",
			wantDetails: "network down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFavoritesService(tt.table, nil)

			err := tt.call(svc)

			var storeErr *entities.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, tt.wantOp, storeErr.Op)
			assert.Equal(t, tt.wantMessage, storeErr.Message)
			assert.Equal(t, tt.wantDetails, storeErr.Details)
		})
	}
}

func TestFavoritesService_ListNewestFirst(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)
	ctx := context.Background()

	for _, name := range []string{"Aria", "Bram", "Cael"} {
		d := ilyraDraft()
		d.Name = name
		_, err := svc.Create(ctx, "u1", d, false)
		require.NoError(t, err)
	}

	rows, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cael", rows[0].Name)
	assert.Equal(t, "Aria", rows[2].Name)
}

func TestFavoritesService_ListEmptyIsNonNil(t *testing.T) {
	svc := NewFavoritesService(&mocks.FavoritesTable{}, nil)

	rows, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestFavoritesService_RemoveMissingIDSucceeds(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)

	err := svc.Remove(context.Background(), "u1", "missing-id")
	assert.NoError(t, err)
	assert.Equal(t, 1, table.DeleteCalls)
}

func TestFavoritesService_RemoveDeletesRow(t *testing.T) {
	table := &mocks.FavoritesTable{}
	svc := NewFavoritesService(table, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", ilyraDraft(), false)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "u1", created.Item.ID))
	assert.Zero(t, table.Count())
}
