package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

// stepClock makes timeNow advance one minute per call.
func stepClock(t *testing.T) {
	t.Helper()
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	original := timeNow
	timeNow = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
	t.Cleanup(func() { timeNow = original })
}

func newRow(owner, name, enclave string) *entities.SavedCharacter {
	d := entities.Draft{
		Name:           name,
		EnclaveName:    enclave,
		EnclaveSummary: "summary",
		EnclaveHook:    "hook",
	}
	return d.Normalize(owner)
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("connection pragmas", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "favorites.db")})
		require.NoError(t, err)
		defer repo.Close()

		var foreignKeys, busyTimeout int
		var journalMode string
		require.NoError(t, repo.db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
		require.NoError(t, repo.db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
		require.NoError(t, repo.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, 1, foreignKeys)
		assert.Equal(t, 5000, busyTimeout)
		assert.Equal(t, "wal", journalMode)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	var count int
	err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='saved_characters'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Idempotent
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestRepository_InsertReturnsFullRow(t *testing.T) {
	repo := setupTestRepo(t)
	stepClock(t)
	ctx := context.Background()

	row := newRow("u1", "Ilyra", "Moonveil")
	row.Nickname = entities.StringPtr("Lyr")
	row.SpiritName = entities.StringPtr("Oru")
	row.Lore = []string{"one", "two"}
	row.Stats = json.RawMessage(`{"wit":3}`)

	stored, err := repo.Insert(ctx, row)
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "u1", stored.OwnerID)
	assert.Equal(t, "Ilyra", stored.Name)
	require.NotNil(t, stored.Nickname)
	assert.Equal(t, "Lyr", *stored.Nickname)
	assert.Nil(t, stored.Epithet)
	require.NotNil(t, stored.SpiritName)
	assert.Nil(t, stored.SpiritHook)
	assert.Equal(t, []string{"one", "two"}, stored.Lore)
	assert.JSONEq(t, `{"wit":3}`, string(stored.Stats))
	assert.True(t, time.Date(2024, 1, 1, 12, 1, 0, 0, time.UTC).Equal(stored.CreatedAt.Time))
}

func TestRepository_SelectByOwner(t *testing.T) {
	repo := setupTestRepo(t)
	stepClock(t)
	ctx := context.Background()

	for _, name := range []string{"Aria", "Bram", "Cael"} {
		_, err := repo.Insert(ctx, newRow("u1", name, "Moonveil"))
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, newRow("u2", "Dara", "Moonveil"))
	require.NoError(t, err)

	rows, err := repo.SelectByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	names := []string{rows[0].Name, rows[1].Name, rows[2].Name}
	assert.Equal(t, []string{"Cael", "Bram", "Aria"}, names)
	for _, r := range rows {
		assert.NotNil(t, r.Lore)
	}

	empty, err := repo.SelectByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRepository_FindDuplicate(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	stored, err := repo.Insert(ctx, newRow("u1", "Ilyra", "Moonveil"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		owner   string
		char    string
		enclave string
		wantID  string
	}{
		{name: "exact match", owner: "u1", char: "Ilyra", enclave: "Moonveil", wantID: stored.ID},
		{name: "other owner", owner: "u2", char: "Ilyra", enclave: "Moonveil"},
		{name: "other enclave", owner: "u1", char: "Ilyra", enclave: "Ashfall"},
		{name: "other name", owner: "u1", char: "Aria", enclave: "Moonveil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := repo.FindDuplicate(ctx, tt.owner, tt.char, tt.enclave)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRepository_DeleteByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	stored, err := repo.Insert(ctx, newRow("u1", "Ilyra", "Moonveil"))
	require.NoError(t, err)

	t.Run("other owner cannot delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, "u2", stored.ID))
		rows, err := repo.SelectByOwner(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, "u1", stored.ID))
		rows, err := repo.SelectByOwner(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing id is not an error", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByID(ctx, "u1", "missing-id"))
	})
}

func TestRepository_ClosedDatabaseErrors(t *testing.T) {
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.SelectByOwner(context.Background(), "u1")
	assert.Error(t, err)
}
