package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/handlers"
	"github.com/ersonp/enclave-favorites/internal/application/viewmodel"
)

func newGenerateCmd() *cobra.Command {
	var opts handlers.GenerateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a character with the LLM",
		Long:  "Asks the configured LLM for a new character and prints it. With --save the character is added to favorites.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Hint, "hint", "", "Optional direction for the character")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save the generated character to favorites")
	cmd.Flags().BoolVar(&opts.AllowDuplicate, "allow-duplicate", false, "Save even if the character is already a favorite")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts handlers.GenerateOptions) error {
	ctx := cmd.Context()

	return withGenerateHandler(ctx, func(h *handlers.GenerateHandler) error {
		result, err := h.Handle(ctx, opts)
		if err != nil {
			return err
		}

		fmt.Println(viewmodel.FormatFullBlock(result.Draft.Normalize("")))

		if result.Saved != nil {
			fmt.Println()
			printCreateResult(result.Saved)
		}
		return nil
	})
}
