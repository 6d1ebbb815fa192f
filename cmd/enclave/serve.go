package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/enclave-favorites/internal/infrastructure/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the favorites API over HTTP",
		Long:  "Runs the favorites REST API against the local store until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withInternalDeps(ctx, func(d *internalDeps) error {
				serverCfg := d.Config.Server
				if addr != "" {
					serverCfg.Addr = addr
				}
				return httpapi.NewServer(serverCfg, d.Favorites, d.Logger).Run(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}
