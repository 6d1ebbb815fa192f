package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

type saveFlags struct {
	name           string
	nickname       string
	epithet        string
	enclaveName    string
	enclaveSummary string
	enclaveHook    string
	spiritName     string
	spiritSummary  string
	spiritHook     string
	lore           []string
	stats          string
	allowDuplicate bool
}

func newSaveCmd() *cobra.Command {
	var flags saveFlags

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a character to favorites",
		Long:  "Saves a character. A character with the same name and enclave is skipped unless --allow-duplicate is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Character name (required)")
	cmd.Flags().StringVar(&flags.nickname, "nickname", "", "Nickname")
	cmd.Flags().StringVar(&flags.epithet, "epithet", "", "Epithet")
	cmd.Flags().StringVar(&flags.enclaveName, "enclave", "", "Enclave name (required)")
	cmd.Flags().StringVar(&flags.enclaveSummary, "enclave-summary", "", "Enclave summary (required)")
	cmd.Flags().StringVar(&flags.enclaveHook, "enclave-hook", "", "Enclave hook (required)")
	cmd.Flags().StringVar(&flags.spiritName, "spirit", "", "Spirit name")
	cmd.Flags().StringVar(&flags.spiritSummary, "spirit-summary", "", "Spirit summary")
	cmd.Flags().StringVar(&flags.spiritHook, "spirit-hook", "", "Spirit hook")
	cmd.Flags().StringArrayVar(&flags.lore, "lore", nil, "Lore line (repeatable)")
	cmd.Flags().StringVar(&flags.stats, "stats", "", "Stats as a JSON object")
	cmd.Flags().BoolVar(&flags.allowDuplicate, "allow-duplicate", false, "Save even if the character is already a favorite")

	return cmd
}

func (f *saveFlags) request() (entities.CreateRequest, error) {
	req := entities.CreateRequest{
		Draft: entities.Draft{
			Name:           f.name,
			Nickname:       entities.StringPtr(f.nickname),
			Epithet:        entities.StringPtr(f.epithet),
			EnclaveName:    f.enclaveName,
			EnclaveSummary: f.enclaveSummary,
			EnclaveHook:    f.enclaveHook,
			SpiritName:     entities.StringPtr(f.spiritName),
			SpiritSummary:  entities.StringPtr(f.spiritSummary),
			SpiritHook:     entities.StringPtr(f.spiritHook),
			Lore:           f.lore,
		},
		AllowDuplicate: f.allowDuplicate,
	}

	if f.stats != "" {
		if !json.Valid([]byte(f.stats)) {
			return entities.CreateRequest{}, fmt.Errorf("invalid --stats JSON %q", f.stats)
		}
		req.Stats = json.RawMessage(f.stats)
	}

	return req, nil
}

func runSave(cmd *cobra.Command, flags saveFlags) error {
	req, err := flags.request()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.Favorites.Create(ctx, req)
		if err != nil {
			var validationErr *entities.ValidationError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("cannot save: %w", err)
			}
			return fmt.Errorf("saving favorite: %w", err)
		}

		printCreateResult(result)
		return nil
	})
}

func printCreateResult(result *entities.CreateResult) {
	if result.Duplicated {
		fmt.Printf("%s (use --allow-duplicate to save another copy)\n", result.Message)
		return
	}
	fmt.Printf("%s: %s (%s)\n", result.Message, result.Item.Name, result.Item.ID)
}
