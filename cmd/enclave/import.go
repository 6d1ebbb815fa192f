package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/handlers"
)

type importFlags struct {
	format          string
	dryRun          bool
	allowDuplicates bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import favorites from a JSON or CSV file",
		Long:  "Imports characters one at a time. Rows that fail validation are reported and skipped; rows matching an existing favorite are skipped unless --allow-duplicates is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().BoolVar(&flags.allowDuplicates, "allow-duplicates", false, "Save rows even if they are already favorites")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()

	return withImportHandler(ctx, func(h *handlers.ImportHandler) error {
		result, err := h.Handle(ctx, filePath, handlers.ImportOptions{
			Format:         flags.format,
			DryRun:         flags.dryRun,
			AllowDuplicate: flags.allowDuplicates,
		})
		if err != nil {
			return err
		}

		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e.Error())
		}

		verb := "Imported"
		if flags.dryRun {
			verb = "Would import"
		}
		fmt.Printf("%s: %d, skipped as duplicates: %d, errors: %d\n",
			verb, result.Imported, result.Duplicated, len(result.Errors))
		return nil
	})
}
