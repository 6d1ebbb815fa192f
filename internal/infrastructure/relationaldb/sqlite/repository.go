// Package sqlite provides a SQLite implementation of the FavoritesTable interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/relationaldb"
)

// timeLayout is fixed width so that ORDER BY created_at sorts chronologically.
const timeLayout = "2006-01-02 15:04:05.000000000"

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.FavoritesTable using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS saved_characters (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		nickname TEXT,
		epithet TEXT,
		enclave_name TEXT NOT NULL,
		enclave_summary TEXT NOT NULL,
		enclave_hook TEXT NOT NULL,
		spirit_name TEXT,
		spirit_summary TEXT,
		spirit_hook TEXT,
		lore TEXT NOT NULL DEFAULT '[]',
		stats TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_saved_characters_owner_created ON saved_characters(owner_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_saved_characters_dedupe ON saved_characters(owner_id, name, enclave_name);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SelectByOwner returns every row for ownerID, newest first.
func (r *Repository) SelectByOwner(ctx context.Context, ownerID string) ([]entities.SavedCharacter, error) {
	query := `SELECT ` + relationaldb.Columns + `
		FROM saved_characters
		WHERE owner_id = ?
		ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	result := []entities.SavedCharacter{}
	for rows.Next() {
		c, err := relationaldb.ScanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorites: %w", err)
	}

	return result, nil
}

// FindDuplicate returns the id of a row matching the dedupe key, or "".
func (r *Repository) FindDuplicate(ctx context.Context, ownerID, name, enclaveName string) (string, error) {
	query := `SELECT id FROM saved_characters
		WHERE owner_id = ? AND name = ? AND enclave_name = ?
		LIMIT 1`

	var id string
	err := r.db.QueryRowContext(ctx, query, ownerID, name, enclaveName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("finding duplicate favorite: %w", err)
	}
	return id, nil
}

// Insert assigns an id and creation time, stores row and returns the stored row.
func (r *Repository) Insert(ctx context.Context, row *entities.SavedCharacter) (*entities.SavedCharacter, error) {
	lore, err := relationaldb.EncodeLore(row.Lore)
	if err != nil {
		return nil, err
	}

	id := generateUUID()
	createdAt := timeNow().UTC()

	query := `INSERT INTO saved_characters (` + relationaldb.Columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + relationaldb.Columns

	stored, err := relationaldb.ScanCharacter(r.db.QueryRowContext(ctx, query,
		id, row.OwnerID, row.Name,
		relationaldb.NullableString(row.Nickname), relationaldb.NullableString(row.Epithet),
		row.EnclaveName, row.EnclaveSummary, row.EnclaveHook,
		relationaldb.NullableString(row.SpiritName), relationaldb.NullableString(row.SpiritSummary),
		relationaldb.NullableString(row.SpiritHook),
		lore, relationaldb.EncodeStats(row.Stats), createdAt.Format(timeLayout),
	))
	if err != nil {
		return nil, fmt.Errorf("inserting favorite: %w", err)
	}

	return stored, nil
}

// DeleteByID removes the row with id owned by ownerID. Missing rows are not an error.
func (r *Repository) DeleteByID(ctx context.Context, ownerID, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_characters WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	return nil
}
