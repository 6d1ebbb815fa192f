package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/handlers"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	var withSearch bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize enclave in the current directory",
		Long:  "Creates a .enclave directory with default configuration, prepares the favorites table and, with --search, the Qdrant collection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, withSearch)
		},
	}

	cmd.Flags().BoolVar(&withSearch, "search", false, "Also create the Qdrant collection used by index and search")

	return cmd
}

func runInit(cmd *cobra.Command, withSearch bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	configPath, err := handlers.WriteConfig(cwd)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", configPath)

	return withInternalDeps(ctx, func(d *internalDeps) error {
		var collections ports.CollectionManager
		if withSearch {
			repo, err := qdrant.NewRepository(d.Config.Qdrant)
			if err != nil {
				return fmt.Errorf("connecting to qdrant: %w", err)
			}
			defer repo.Close()
			collections = repo
		}

		result, err := handlers.NewInitHandler(d.table, collections).Handle(ctx, configPath, d.Config.Qdrant.Collection)
		if err != nil {
			return err
		}

		fmt.Printf("Prepared %s favorites store\n", d.Config.Store.Driver)
		if result.CollectionName != "" {
			fmt.Printf("Created Qdrant collection: %s\n", result.CollectionName)
		}
		fmt.Println("Enclave initialized successfully!")
		return nil
	})
}
