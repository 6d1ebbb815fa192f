// Package viewmodel holds the session-scoped favorites list and the views derived from it.
package viewmodel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
)

// ErrRemoveInFlight is returned by Remove while another remove is outstanding.
var ErrRemoveInFlight = errors.New("a remove is already in progress")

const (
	loadKey = "favorites"

	fallbackLoadMessage   = "Failed to load favorites"
	fallbackDeleteMessage = "Failed to delete favorite"
)

// Favorites is the in-memory list of the current owner's saved characters.
// The held list is written only by Load, always as a full replacement.
type Favorites struct {
	api    ports.FavoritesAPI
	logger *slog.Logger
	group  singleflight.Group

	issued   atomic.Uint64
	removing atomic.Bool

	mu        sync.RWMutex
	items     []entities.SavedCharacter
	applied   uint64
	loadErr   string
	deleteErr string
}

// New creates a view model backed by api. A nil logger discards output.
func New(api ports.FavoritesAPI, logger *slog.Logger) *Favorites {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Favorites{
		api:    api,
		logger: logger,
	}
}

// Load fetches the full list and replaces the held one. On failure the held
// list is cleared and a load error is recorded. Concurrent calls share one fetch.
// The shared fetch does not inherit any caller's cancellation; a caller whose ctx
// ends stops waiting and gets ctx.Err() while the fetch completes for the others.
func (f *Favorites) Load(ctx context.Context) error {
	ch := f.group.DoChan(loadKey, func() (any, error) {
		return nil, f.fetch(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// reload starts a fresh fetch instead of joining one that may predate a mutation.
func (f *Favorites) reload(ctx context.Context) error {
	f.group.Forget(loadKey)
	return f.Load(ctx)
}

func (f *Favorites) fetch(ctx context.Context) error {
	gen := f.issued.Add(1)
	items, err := f.api.List(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	// A newer fetch has already landed.
	if gen < f.applied {
		return err
	}
	f.applied = gen

	if err != nil {
		f.items = nil
		f.loadErr = errorMessage(err, fallbackLoadMessage)
		f.logger.WarnContext(ctx, "loading favorites failed", "error", err)
		return err
	}

	f.items = items
	f.loadErr = ""
	return nil
}

// Remove deletes id and then reloads the list; it returns once the reload is done.
// On a delete failure the held list is left untouched and a delete error is recorded.
func (f *Favorites) Remove(ctx context.Context, id string) error {
	if !f.removing.CompareAndSwap(false, true) {
		return ErrRemoveInFlight
	}
	defer f.removing.Store(false)

	if err := f.api.Delete(ctx, id); err != nil {
		f.mu.Lock()
		f.deleteErr = errorMessage(err, fallbackDeleteMessage)
		f.mu.Unlock()
		f.logger.WarnContext(ctx, "removing favorite failed", "id", id, "error", err)
		return err
	}

	f.mu.Lock()
	f.deleteErr = ""
	f.mu.Unlock()

	return f.reload(ctx)
}

// Removing reports whether a remove is outstanding.
func (f *Favorites) Removing() bool {
	return f.removing.Load()
}

// Items returns a copy of the held list in store order.
func (f *Favorites) Items() []entities.SavedCharacter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]entities.SavedCharacter(nil), f.items...)
}

// LoadError returns the message recorded by the last failed load, or "".
func (f *Favorites) LoadError() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loadErr
}

// DeleteError returns the message recorded by the last failed remove, or "".
func (f *Favorites) DeleteError() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.deleteErr
}

func errorMessage(err error, fallback string) string {
	var storeErr *entities.StoreError
	if errors.As(err, &storeErr) && storeErr.Message != "" {
		return storeErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
