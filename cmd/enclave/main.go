// Package main provides the entry point for the enclave CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version      = "0.1.0-dev"
	globalServer string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "enclave",
		Short:         "Keep, browse and export favorite generated characters",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalServer, "server", "", "Favorites server URL (overrides client.server_url)")

	rootCmd.AddCommand(
		newInitCmd(),
		newServeCmd(),
		newListCmd(),
		newSaveCmd(),
		newRemoveCmd(),
		newExportCmd(),
		newImportCmd(),
		newGenerateCmd(),
		newIndexCmd(),
		newSearchCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
