package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// FavoritesAPI is a mock implementation of ports.FavoritesAPI.
// ListResults are consumed in order; the last entry repeats once exhausted.
type FavoritesAPI struct {
	mu sync.Mutex

	ListResults [][]entities.SavedCharacter
	ListErr     error
	ListCalls   int
	// BeforeList runs at the start of every List call, outside the lock.
	BeforeList func(call int)

	CreateResult *entities.CreateResult
	CreateErr    error
	Created      []entities.CreateRequest

	DeleteErr error
	Deleted   []string
	// BeforeDelete runs at the start of every Delete call, outside the lock.
	BeforeDelete func(id string)
}

// List returns the next configured result or error, or ctx.Err() once ctx is done.
func (m *FavoritesAPI) List(ctx context.Context) ([]entities.SavedCharacter, error) {
	m.mu.Lock()
	m.ListCalls++
	call := m.ListCalls
	hook := m.BeforeList
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if len(m.ListResults) == 0 {
		return nil, nil
	}
	idx := call - 1
	if idx >= len(m.ListResults) {
		idx = len(m.ListResults) - 1
	}
	return m.ListResults[idx], nil
}

// Create records the request and returns the configured result or error.
func (m *FavoritesAPI) Create(ctx context.Context, req entities.CreateRequest) (*entities.CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, req)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.CreateResult, nil
}

// Delete records the id and returns the configured error.
func (m *FavoritesAPI) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	hook := m.BeforeDelete
	m.mu.Unlock()

	if hook != nil {
		hook(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, id)
	return m.DeleteErr
}
