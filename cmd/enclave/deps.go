package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/enclave-favorites/internal/application/handlers"
	"github.com/ersonp/enclave-favorites/internal/application/viewmodel"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
	embedder "github.com/ersonp/enclave-favorites/internal/infrastructure/embedder/openai"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/httpapi"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/identity"
	llm "github.com/ersonp/enclave-favorites/internal/infrastructure/llm/openai"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/logging"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/relationaldb/postgres"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/vectordb/qdrant"
)

// errRemoteStore is returned by commands that need direct store access while a server URL is set.
var errRemoteStore = errors.New("this command needs a local store; unset client.server_url or --server")

// Deps holds high-level dependencies for commands.
// Favorites is either the in-process handler or a client for a remote server.
type Deps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Favorites ports.FavoritesAPI
}

// ViewModel returns a fresh favorites view model over d.Favorites.
func (d *Deps) ViewModel() *viewmodel.Favorites {
	return viewmodel.New(d.Favorites, d.Logger)
}

// internalDeps holds all dependencies including low-level components.
// Only available when the store is local.
type internalDeps struct {
	Deps
	table     ports.FavoritesTable
	owners    ports.OwnerProvider
	favorites *services.FavoritesService
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return withLogger(cfg, func(logger *slog.Logger) error {
		if cfg.Client.ServerURL == "" {
			return withLocalStore(ctx, cfg, logger, func(d *internalDeps) error {
				return fn(&d.Deps)
			})
		}

		client, err := httpapi.NewClient(cfg.Client, logger)
		if err != nil {
			return fmt.Errorf("creating favorites client: %w", err)
		}
		return fn(&Deps{Config: cfg, Logger: logger, Favorites: client})
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
// Used by commands that need direct store or service access.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Client.ServerURL != "" {
		return errRemoteStore
	}

	return withLogger(cfg, func(logger *slog.Logger) error {
		return withLocalStore(ctx, cfg, logger, fn)
	})
}

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if globalServer != "" {
		cfg.Client.ServerURL = globalServer
	}

	return cfg, nil
}

func withLogger(cfg *config.Config, fn func(*slog.Logger) error) (err error) {
	logger, closeLogger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() {
		if cerr := closeLogger(); cerr != nil && err == nil {
			err = fmt.Errorf("closing logger: %w", cerr)
		}
	}()

	return fn(logger)
}

func withLocalStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(*internalDeps) error) error {
	table, err := openTable(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer table.Close()

	// Ensure schema exists
	if err := table.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring favorites schema: %w", err)
	}

	owners, err := identity.NewFixed(cfg.Owner.ID)
	if err != nil {
		return err
	}

	favorites := services.NewFavoritesService(table, logger)

	deps := &internalDeps{
		Deps: Deps{
			Config:    cfg,
			Logger:    logger,
			Favorites: handlers.NewFavoritesHandler(favorites, owners),
		},
		table:     table,
		owners:    owners,
		favorites: favorites,
	}

	return fn(deps)
}

// openTable opens the favorites table for the configured driver.
func openTable(ctx context.Context, cfg config.StoreConfig) (ports.FavoritesTable, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		repo, err := postgres.NewRepository(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("creating postgres repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.NewRepository(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite repository: %w", err)
		}
		return repo, nil
	}
}

// withSearchHandler provides a SearchHandler backed by Qdrant and the OpenAI embedder.
func withSearchHandler(ctx context.Context, fn func(*handlers.SearchHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		repo, err := qdrant.NewRepository(d.Config.Qdrant)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer repo.Close()

		emb, err := embedder.NewEmbedder(d.Config.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		searchService := services.NewSearchService(d.favorites, emb, repo)
		return fn(handlers.NewSearchHandler(searchService, d.owners))
	})
}

// withGenerateHandler provides a GenerateHandler that saves through the configured favorites API.
func withGenerateHandler(ctx context.Context, fn func(*handlers.GenerateHandler) error) error {
	return withDeps(ctx, func(d *Deps) error {
		llmClient, err := llm.NewClient(d.Config.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}

		generator := services.NewGeneratorService(llmClient)
		return fn(handlers.NewGenerateHandler(generator, d.Favorites))
	})
}

// withImportHandler creates an ImportHandler and calls the provided function.
func withImportHandler(ctx context.Context, fn func(*handlers.ImportHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		importService := services.NewImportService(d.favorites)
		return fn(handlers.NewImportHandler(importService, d.owners))
	})
}
