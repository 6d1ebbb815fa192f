// Package relationaldb holds helpers shared by the SQL implementations of ports.FavoritesTable.
package relationaldb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// Columns is the select list every adapter uses for saved_characters, in ScanCharacter order.
const Columns = `id, owner_id, name, nickname, epithet, enclave_name, enclave_summary, enclave_hook,
	spirit_name, spirit_summary, spirit_hook, lore, stats, created_at`

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanCharacter reads one saved_characters row selected with Columns.
func ScanCharacter(s Scanner) (*entities.SavedCharacter, error) {
	var (
		c                                     entities.SavedCharacter
		nickname, epithet                     sql.NullString
		spiritName, spiritSummary, spiritHook sql.NullString
		lore, stats                           []byte
		createdAt                             Time
	)

	err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &nickname, &epithet,
		&c.EnclaveName, &c.EnclaveSummary, &c.EnclaveHook,
		&spiritName, &spiritSummary, &spiritHook,
		&lore, &stats, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	c.Nickname = nullString(nickname)
	c.Epithet = nullString(epithet)
	c.SpiritName = nullString(spiritName)
	c.SpiritSummary = nullString(spiritSummary)
	c.SpiritHook = nullString(spiritHook)
	c.CreatedAt = entities.NewTimestamp(createdAt.Time)

	c.Lore = []string{}
	if len(lore) > 0 {
		if err := json.Unmarshal(lore, &c.Lore); err != nil {
			return nil, fmt.Errorf("decoding lore for %s: %w", c.ID, err)
		}
	}
	if len(stats) > 0 {
		c.Stats = json.RawMessage(stats)
	} else {
		c.Stats = json.RawMessage(`{}`)
	}

	return &c, nil
}

// EncodeLore returns the JSON text stored in the lore column.
func EncodeLore(lore []string) (string, error) {
	if lore == nil {
		lore = []string{}
	}
	data, err := json.Marshal(lore)
	if err != nil {
		return "", fmt.Errorf("encoding lore: %w", err)
	}
	return string(data), nil
}

// EncodeStats returns the JSON text stored in the stats column.
func EncodeStats(stats json.RawMessage) string {
	if len(stats) == 0 {
		return "{}"
	}
	return string(stats)
}

// NullableString converts an optional field to a driver value, nil for NULL.
func NullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// Time scans timestamps whether the driver returns time.Time, text or NULL.
// Unparseable text scans as the zero time.
type Time struct {
	time.Time
}

// Scan implements sql.Scanner.
func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case string:
		t.Time = entities.ParseTimestamp(v)
	case []byte:
		t.Time = entities.ParseTimestamp(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	return nil
}
