// Package postgres provides a PostgreSQL implementation of the FavoritesTable interface
// on top of database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/relationaldb"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/relationaldb/postgres/migrations"
)

// gooseUpContext is swapped out in tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Repository implements ports.FavoritesTable using PostgreSQL.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a connection pool for cfg.DSN and verifies it with a ping.
func NewRepository(ctx context.Context, cfg config.PostgresConfig) (*Repository, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return NewRepositoryWithDB(db), nil
}

// NewRepositoryWithDB wraps an already opened database.
func NewRepositoryWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

// EnsureSchema applies the embedded goose migrations.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, r.db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SelectByOwner returns every row for ownerID, newest first.
func (r *Repository) SelectByOwner(ctx context.Context, ownerID string) ([]entities.SavedCharacter, error) {
	query := `SELECT ` + relationaldb.Columns + `
		FROM saved_characters
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", convertError(err))
	}
	defer rows.Close()

	result := []entities.SavedCharacter{}
	for rows.Next() {
		c, err := relationaldb.ScanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", convertError(err))
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorites: %w", convertError(err))
	}

	return result, nil
}

// FindDuplicate returns the id of a row matching the dedupe key, or "".
func (r *Repository) FindDuplicate(ctx context.Context, ownerID, name, enclaveName string) (string, error) {
	query := `SELECT id FROM saved_characters
		WHERE owner_id = $1 AND name = $2 AND enclave_name = $3
		LIMIT 1`

	var id string
	err := r.db.QueryRowContext(ctx, query, ownerID, name, enclaveName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("finding duplicate favorite: %w", convertError(err))
	}
	return id, nil
}

// Insert stores row and returns it with the id and timestamp assigned by the database.
func (r *Repository) Insert(ctx context.Context, row *entities.SavedCharacter) (*entities.SavedCharacter, error) {
	lore, err := relationaldb.EncodeLore(row.Lore)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO saved_characters (
			owner_id, name, nickname, epithet, enclave_name, enclave_summary, enclave_hook,
			spirit_name, spirit_summary, spirit_hook, lore, stats
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12::jsonb)
		RETURNING ` + relationaldb.Columns

	stored, err := relationaldb.ScanCharacter(r.db.QueryRowContext(ctx, query,
		row.OwnerID, row.Name,
		relationaldb.NullableString(row.Nickname), relationaldb.NullableString(row.Epithet),
		row.EnclaveName, row.EnclaveSummary, row.EnclaveHook,
		relationaldb.NullableString(row.SpiritName), relationaldb.NullableString(row.SpiritSummary),
		relationaldb.NullableString(row.SpiritHook),
		lore, relationaldb.EncodeStats(row.Stats),
	))
	if err != nil {
		return nil, fmt.Errorf("inserting favorite: %w", convertError(err))
	}

	return stored, nil
}

// DeleteByID removes the row with id owned by ownerID. Missing rows are not an error.
func (r *Repository) DeleteByID(ctx context.Context, ownerID, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_characters WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", convertError(err))
	}
	return nil
}

// convertError exposes the server's message for postgres errors.
func convertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &ports.PayloadError{
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Code:    pgErr.Code,
			Err:     err,
		}
	}
	return err
}
