package mocks

import (
	"context"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

// CharacterIndex is a mock implementation of ports.CharacterIndex and ports.CollectionManager.
type CharacterIndex struct {
	Items []ports.IndexedCharacter
	Hits  []ports.SearchHit
	Err   error

	EnsureCollectionErr error

	// Call tracking
	EnsureCollectionCallCount int
	LastVectorSize            uint64
	UpsertCallCount           int
	SearchOwner               string
	SearchLimit               int
	DeletedIDs                []string
	DeletedOwners             []string
}

// EnsureCollection records the requested vector size.
func (m *CharacterIndex) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.EnsureCollectionCallCount++
	m.LastVectorSize = vectorSize
	return m.EnsureCollectionErr
}

// DeleteCollection drops every stored item.
func (m *CharacterIndex) DeleteCollection(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Items = nil
	return nil
}

// Upsert appends items.
func (m *CharacterIndex) Upsert(ctx context.Context, items []ports.IndexedCharacter) error {
	m.UpsertCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Items = append(m.Items, items...)
	return nil
}

// Search returns the configured hits.
func (m *CharacterIndex) Search(ctx context.Context, ownerID string, embedding []float32, limit int) ([]ports.SearchHit, error) {
	m.SearchOwner = ownerID
	m.SearchLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Hits, nil
}

// Delete records the ids.
func (m *CharacterIndex) Delete(ctx context.Context, ids []string) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeletedIDs = append(m.DeletedIDs, ids...)
	return nil
}

// DeleteByOwner drops the owner's items.
func (m *CharacterIndex) DeleteByOwner(ctx context.Context, ownerID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeletedOwners = append(m.DeletedOwners, ownerID)
	kept := m.Items[:0]
	for _, item := range m.Items {
		if item.OwnerID != ownerID {
			kept = append(kept, item)
		}
	}
	m.Items = kept
	return nil
}
