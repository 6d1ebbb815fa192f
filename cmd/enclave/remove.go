package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/application/viewmodel"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove characters from favorites",
		Long:  "Removes favorites by ID, one at a time, reloading the list after each removal.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		vm := d.ViewModel()

		var errs []error
		for _, id := range args {
			if err := vm.Remove(ctx, id); err != nil {
				if errors.Is(err, viewmodel.ErrRemoveInFlight) {
					return err
				}
				if vm.DeleteError() == "" {
					// deleted; only the reload failed
					fmt.Printf("Removed: %s\n", id)
					continue
				}
				fmt.Printf("Could not remove %s: %s\n", id, vm.DeleteError())
				errs = append(errs, fmt.Errorf("removing %s: %w", id, err))
				continue
			}
			fmt.Printf("Removed: %s\n", id)
		}

		if msg := vm.LoadError(); msg != "" {
			fmt.Printf("Could not reload favorites: %s\n", msg)
		} else {
			fmt.Printf("%d favorites remaining\n", len(vm.Items()))
		}

		return errors.Join(errs...)
	})
}
