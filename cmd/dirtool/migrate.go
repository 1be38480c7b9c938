package main

import (
	"github.com/spf13/cobra"

	"communityconnect.org/internal/logging"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the businesses schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.openClient(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, opts.logger(cmd), "directory_database")

			if err := client.Migrate(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("schema ready (%s)\n", client.Driver())
			return nil
		},
	}
}
