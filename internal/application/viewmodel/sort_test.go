package viewmodel

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/mocks"
)

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{in: "", want: SortRecent},
		{in: "recent", want: SortRecent},
		{in: "oldest", want: SortOldest},
		{in: "az", want: SortAZ},
		{in: "za", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func loaded(t *testing.T, items ...entities.SavedCharacter) *Favorites {
	t.Helper()
	vm := New(&mocks.FavoritesAPI{ListResults: [][]entities.SavedCharacter{items}}, nil)
	require.NoError(t, vm.Load(context.Background()))
	return vm
}

func TestSortedView_RecentAndOldest(t *testing.T) {
	vm := loaded(t,
		character("mid", "Cael", 5),
		character("none", "Dara", -1),
		character("new", "Aria", 9),
		character("old", "Bram", 1),
	)

	recent := ids(vm.SortedView(SortRecent))
	oldest := ids(vm.SortedView(SortOldest))

	assert.Equal(t, []string{"new", "mid", "old", "none"}, recent)
	assert.Equal(t, []string{"none", "old", "mid", "new"}, oldest)

	reversed := slices.Clone(oldest)
	slices.Reverse(reversed)
	assert.Equal(t, recent, reversed)

	// The held list keeps store order.
	assert.Equal(t, []string{"mid", "none", "new", "old"}, ids(vm.Items()))
}

func TestSortedView_MissingTimestampsAreStable(t *testing.T) {
	vm := loaded(t,
		character("x", "Xan", -1),
		character("y", "Yara", -1),
		character("z", "Zed", 0),
	)

	// Minute zero is still after the epoch.
	assert.Equal(t, []string{"z", "x", "y"}, ids(vm.SortedView(SortRecent)))
	assert.Equal(t, []string{"x", "y", "z"}, ids(vm.SortedView(SortOldest)))
}

func TestSortedView_AZ(t *testing.T) {
	vm := loaded(t,
		character("1", "Élodie", 1),
		character("2", "bram", 2),
		character("3", "Cael", 3),
		character("4", "Aria", 4),
	)

	got := vm.SortedView(SortAZ)

	names := make([]string, len(got))
	for i := range got {
		names[i] = got[i].Name
	}
	assert.Equal(t, []string{"Aria", "bram", "Cael", "Élodie"}, names)
}

func TestSortedView_UnknownModeIsRecent(t *testing.T) {
	vm := loaded(t, character("old", "Bram", 1), character("new", "Aria", 2))

	assert.Equal(t, []string{"new", "old"}, ids(vm.SortedView("sideways")))
}

func TestSortedView_Empty(t *testing.T) {
	vm := New(&mocks.FavoritesAPI{}, nil)

	assert.Empty(t, vm.SortedView(SortAZ))
}
