package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/viewmodel"
	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

func newListCmd() *cobra.Command {
	var (
		sortMode string
		full     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved characters",
		Long:  "Lists the current owner's favorites, newest first unless --sort says otherwise.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, sortMode, full)
		},
	}

	cmd.Flags().StringVarP(&sortMode, "sort", "s", string(viewmodel.SortRecent), "Sort order (recent, oldest, az)")
	cmd.Flags().BoolVar(&full, "full", false, "Print each character as a full block")

	return cmd
}

func runList(cmd *cobra.Command, sortMode string, full bool) error {
	mode, err := viewmodel.ParseSortMode(sortMode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		vm := d.ViewModel()
		if err := vm.Load(ctx); err != nil {
			return fmt.Errorf("loading favorites: %w", err)
		}

		items := vm.SortedView(mode)
		if len(items) == 0 {
			fmt.Println("No favorites saved.")
			return nil
		}

		displayCharacters(os.Stdout, items, full)
		return nil
	})
}

func displayCharacters(w io.Writer, items []entities.SavedCharacter, full bool) {
	fmt.Fprintf(w, "Showing %d favorites:\n\n", len(items))

	for i := range items {
		if full {
			fmt.Fprintf(w, "ID: %s\n%s\n\n", items[i].ID, viewmodel.FormatFullBlock(&items[i]))
			continue
		}
		displayCharacter(w, &items[i])
	}
}

func displayCharacter(w io.Writer, c *entities.SavedCharacter) {
	fmt.Fprintf(w, "ID: %s\n", c.ID)
	title := c.Name
	if c.Epithet != nil {
		title += " " + *c.Epithet
	}
	if c.Nickname != nil {
		title += fmt.Sprintf(" %q", *c.Nickname)
	}
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "  Enclave: %s\n", c.EnclaveName)
	if c.SpiritName != nil {
		fmt.Fprintf(w, "  Spirit: %s\n", *c.SpiritName)
	}
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Saved: %s\n", c.CreatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(w)
}
