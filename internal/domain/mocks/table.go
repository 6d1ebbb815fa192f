// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// FavoritesTable is an in-memory implementation of ports.FavoritesTable.
// Each Err field forces the matching method to fail.
type FavoritesTable struct {
	mu   sync.Mutex
	Rows []entities.SavedCharacter

	SelectErr    error
	DuplicateErr error
	InsertErr    error
	DeleteErr    error

	SelectCalls    int
	DuplicateCalls int
	InsertCalls    int
	DeleteCalls    int

	nextID int
	clock  time.Time
}

// EnsureSchema is a no-op.
func (m *FavoritesTable) EnsureSchema(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (m *FavoritesTable) Close() error {
	return nil
}

// SelectByOwner returns the owner's rows newest first.
func (m *FavoritesTable) SelectByOwner(ctx context.Context, ownerID string) ([]entities.SavedCharacter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SelectCalls++
	if m.SelectErr != nil {
		return nil, m.SelectErr
	}

	var result []entities.SavedCharacter
	for _, row := range m.Rows {
		if row.OwnerID == ownerID {
			result = append(result, row)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt.Time)
	})
	return result, nil
}

// FindDuplicate returns the id of the first row matching the dedupe key.
func (m *FavoritesTable) FindDuplicate(ctx context.Context, ownerID, name, enclaveName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicateCalls++
	if m.DuplicateErr != nil {
		return "", m.DuplicateErr
	}
	for _, row := range m.Rows {
		if row.OwnerID == ownerID && row.Name == name && row.EnclaveName == enclaveName {
			return row.ID, nil
		}
	}
	return "", nil
}

// Insert assigns a sequential id and a strictly increasing timestamp.
func (m *FavoritesTable) Insert(ctx context.Context, row *entities.SavedCharacter) (*entities.SavedCharacter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}

	if m.clock.IsZero() {
		m.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	m.nextID++
	m.clock = m.clock.Add(time.Minute)

	stored := *row
	stored.ID = fmt.Sprintf("fav-%d", m.nextID)
	stored.CreatedAt = entities.NewTimestamp(m.clock)
	m.Rows = append(m.Rows, stored)
	return &stored, nil
}

// DeleteByID removes the row if present.
func (m *FavoritesTable) DeleteByID(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	kept := m.Rows[:0]
	for _, row := range m.Rows {
		if row.ID == id && row.OwnerID == ownerID {
			continue
		}
		kept = append(kept, row)
	}
	m.Rows = kept
	return nil
}

// Count returns the number of stored rows.
func (m *FavoritesTable) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Rows)
}
