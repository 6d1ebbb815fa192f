package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/handlers"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
)

func newSearchCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search favorites by meaning",
		Long:  "Finds favorites similar to the query. Run 'enclave index' after saving or removing characters.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), limit, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", services.DefaultSearchLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int, jsonOutput bool) error {
	ctx := cmd.Context()

	return withSearchHandler(ctx, func(h *handlers.SearchHandler) error {
		result, err := h.HandleSearch(ctx, query, limit)
		if err != nil {
			return err
		}

		if jsonOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		if len(result.Hits) == 0 {
			fmt.Println("No matching favorites.")
			return nil
		}

		fmt.Printf("Found %d matches for %q:\n\n", len(result.Hits), query)
		for _, hit := range result.Hits {
			fmt.Printf("  %.3f  %s (%s)  [%s]\n", hit.Score, hit.Name, hit.EnclaveName, hit.ID)
		}
		return nil
	})
}
