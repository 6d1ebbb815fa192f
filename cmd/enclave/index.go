package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/handlers"
)

func newIndexCmd() *cobra.Command {
	var drop []string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the search index for your favorites",
		Long:  "Embeds every current favorite and replaces the owner's entries in the Qdrant collection. With --drop, only removes the given favorite IDs from the index.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withSearchHandler(ctx, func(h *handlers.SearchHandler) error {
				if len(drop) > 0 {
					if err := h.HandleForget(ctx, drop); err != nil {
						return err
					}
					fmt.Printf("Dropped %d entries from the index\n", len(drop))
					return nil
				}

				count, err := h.HandleIndex(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Indexed %d favorites\n", count)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&drop, "drop", nil, "Favorite IDs to remove from the index instead of reindexing")

	return cmd
}
