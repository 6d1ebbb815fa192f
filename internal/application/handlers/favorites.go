// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
)

// FavoritesHandler serves the owner-implicit favorites API in-process.
// It resolves the owner for every call and delegates to the store client.
type FavoritesHandler struct {
	service *services.FavoritesService
	owners  ports.OwnerProvider
}

var _ ports.FavoritesAPI = (*FavoritesHandler)(nil)

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(service *services.FavoritesService, owners ports.OwnerProvider) *FavoritesHandler {
	return &FavoritesHandler{
		service: service,
		owners:  owners,
	}
}

// List returns the current owner's favorites, newest first.
func (h *FavoritesHandler) List(ctx context.Context) ([]entities.SavedCharacter, error) {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return nil, err
	}
	return h.service.List(ctx, ownerID)
}

// Create saves a character for the current owner.
func (h *FavoritesHandler) Create(ctx context.Context, req entities.CreateRequest) (*entities.CreateResult, error) {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return nil, err
	}
	return h.service.Create(ctx, ownerID, req.Draft, req.AllowDuplicate)
}

// Delete removes a favorite owned by the current owner.
func (h *FavoritesHandler) Delete(ctx context.Context, id string) error {
	ownerID, err := h.owner(ctx)
	if err != nil {
		return err
	}
	return h.service.Remove(ctx, ownerID, id)
}

// OwnerID exposes the resolved owner for handlers layered on top.
func (h *FavoritesHandler) OwnerID(ctx context.Context) (string, error) {
	return h.owner(ctx)
}

func (h *FavoritesHandler) owner(ctx context.Context) (string, error) {
	ownerID, err := h.owners.OwnerID(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving owner: %w", err)
	}
	return ownerID, nil
}
