// Package services contains domain business logic.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

// Store operation names used in StoreError.Op and logs.
const (
	OpList      = "list favorites"
	OpDuplicate = "check duplicate favorite"
	OpCreate    = "create favorite"
	OpRemove    = "remove favorite"
)

var fallbackMessages = map[string]string{
	OpList:      "Failed to load favorites",
	OpDuplicate: "Failed to check for duplicates",
	OpCreate:    "Failed to save favorite",
	OpRemove:    "Failed to delete favorite",
}

// FallbackMessage returns the user-facing message for op when the store gave none.
func FallbackMessage(op string) string {
	return fallbackMessages[op]
}

// FavoritesService is the store client for saved characters. It validates drafts,
// enforces the (owner, name, enclave) dedupe rule and turns table failures into
// *entities.StoreError values.
type FavoritesService struct {
	table  ports.FavoritesTable
	logger *slog.Logger
}

// NewFavoritesService creates a new FavoritesService. A nil logger discards output.
func NewFavoritesService(table ports.FavoritesTable, logger *slog.Logger) *FavoritesService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FavoritesService{
		table:  table,
		logger: logger.With("component", "favorites_service"),
	}
}

// List returns every favorite for ownerID, newest first.
func (s *FavoritesService) List(ctx context.Context, ownerID string) ([]entities.SavedCharacter, error) {
	rows, err := s.table.SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.storeError(ctx, OpList, ownerID, err)
	}
	if rows == nil {
		rows = []entities.SavedCharacter{}
	}
	return rows, nil
}

// Create validates draft and stores it for ownerID. Unless allowDuplicate is set,
// a row already matching the dedupe key short-circuits into a duplicated result
// with a nil error.
func (s *FavoritesService) Create(ctx context.Context, ownerID string, draft entities.Draft, allowDuplicate bool) (*entities.CreateResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	row := draft.Normalize(ownerID)

	if !allowDuplicate {
		existingID, err := s.table.FindDuplicate(ctx, ownerID, row.Name, row.EnclaveName)
		if err != nil {
			return nil, s.storeError(ctx, OpDuplicate, ownerID, err)
		}
		if existingID != "" {
			s.logger.InfoContext(ctx, "duplicate favorite skipped",
				"owner_id", ownerID, "existing_id", existingID, "name", row.Name)
			return &entities.CreateResult{Duplicated: true, Message: entities.MessageDuplicated}, nil
		}
	}

	saved, err := s.table.Insert(ctx, row)
	if err != nil {
		return nil, s.storeError(ctx, OpCreate, ownerID, err)
	}

	return &entities.CreateResult{Item: saved, Message: entities.MessageSaved}, nil
}

// Remove deletes id within ownerID's scope. A missing id is not an error.
func (s *FavoritesService) Remove(ctx context.Context, ownerID, id string) error {
	if err := s.table.DeleteByID(ctx, ownerID, id); err != nil {
		return s.storeError(ctx, OpRemove, ownerID, err)
	}
	return nil
}

func (s *FavoritesService) storeError(ctx context.Context, op, ownerID string, err error) error {
	storeErr := &entities.StoreError{
		Op:      op,
		Message: FallbackMessage(op),
		Details: err.Error(),
		Err:     err,
	}

	var payload *ports.PayloadError
	if errors.As(err, &payload) && payload.Message != "" {
		storeErr.Message = payload.Message
		storeErr.Details = payload.Details
	}

	s.logger.ErrorContext(ctx, "store operation failed",
		"op", op, "owner_id", ownerID, "error", err)
	return storeErr
}
